package emailsvc

import (
	"fmt"
	"net/mail"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/trezcool/edunexus/core"
)

var (
	// SentMessages records everything "sent" for tests to inspect.
	SentMessages = make([]core.EmailMessage, 0)
	mu           sync.Mutex
)

// consoleService prints outgoing mail to stdout. Used in DEV|TEST mode.
type consoleService struct {
	defaultFromEmail mail.Address
	subjPrefix       string
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config) core.EmailService {
	return &consoleService{
		defaultFromEmail: mail.Address{Name: conf.AppName, Address: conf.DefaultFromEmail},
		subjPrefix:       "[" + conf.AppName + "] ",
	}
}

func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		if len(msg.To) == 0 || msg.BodyStr == "" {
			continue
		}
		svc.send(*msg)
		mu.Lock()
		SentMessages = append(SentMessages, *msg)
		mu.Unlock()
	}
}

func (svc consoleService) send(msg core.EmailMessage) {
	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFromEmail.String())
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(body, "To: %s\r\n", svc.joinAddresses(msg.To))
	_, _ = fmt.Fprintf(body, "\r\n%s\r\n", msg.BodyStr)
	for _, a := range msg.Attachments {
		_, _ = fmt.Fprintf(body, "Attachment: %s (%s)\r\n", a.Filename, a.ContentType)
	}

	fmt.Fprintln(os.Stdout, "---------------------------------------------------------------------")
	fmt.Fprint(os.Stdout, body.String())
	fmt.Fprintln(os.Stdout, "---------------------------------------------------------------------")
}

func (svc consoleService) joinAddresses(addrs []mail.Address) string {
	strAddrs := make([]string, len(addrs))
	for i, addr := range addrs {
		strAddrs[i] = addr.String()
	}
	return strings.Join(strAddrs, ", ")
}
