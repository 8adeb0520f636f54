package core

import (
	"bytes"
	"net/mail"
)

type (
	Attachment struct {
		Content     *bytes.Buffer
		ContentType string
		Filename    string
	}

	EmailMessage struct {
		To          []mail.Address
		Subject     string
		BodyStr     string
		Attachments []Attachment
	}

	EmailService interface {
		SendMessages(messages ...*EmailMessage)
	}
)
