package record

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// ErrSlotEmpty is returned by Slot.Read when nothing has been persisted yet.
var ErrSlotEmpty = errors.New("storage slot is empty")

// Slot is the single storage slot the whole document lives in.
// It is a raw byte slot: no locking, no versioning, no checksums; a write
// replaces the previous content wholesale (last-write-wins).
type Slot interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// FileSlot persists each key as "<key>.json" under a data directory.
type FileSlot struct {
	Dir string
}

var _ Slot = (*FileSlot)(nil)

func NewFileSlot(dir string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	return &FileSlot{Dir: dir}, nil
}

func (s *FileSlot) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

func (s *FileSlot) Read(key string) ([]byte, error) {
	data, err := ioutil.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotEmpty
		}
		return nil, errors.Wrap(err, "reading slot")
	}
	return data, nil
}

func (s *FileSlot) Write(key string, data []byte) error {
	if err := ioutil.WriteFile(s.path(key), data, 0o644); err != nil {
		return errors.Wrap(err, "writing slot")
	}
	return nil
}

// MemSlot is an in-memory Slot for tests.
type MemSlot struct {
	mutex sync.RWMutex
	data  map[string][]byte
}

var _ Slot = (*MemSlot)(nil)

func NewMemSlot() *MemSlot {
	return &MemSlot{data: make(map[string][]byte)}
}

func (s *MemSlot) Read(key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return data, nil
}

func (s *MemSlot) Write(key string, data []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data[key] = data
	return nil
}
