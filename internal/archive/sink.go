package archive

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Sink is where finished transfer files end up. The core pipeline only
// ever streams into a Sink, the surrounding platform decides whether
// that is a download directory, an http response or a buffer.
type Sink interface {
	Create(name string) (io.WriteCloser, error)
}

// DirSink writes transfer files into a directory
type DirSink struct {
	Dir string
}

func (s DirSink) Create(name string) (io.WriteCloser, error) {
	if err := os.MkdirAll(s.Dir, 0744); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(s.Dir, name))
}

// Discard removes a transfer file that did not complete
func (s DirSink) Discard(name string) error {
	return os.Remove(filepath.Join(s.Dir, name))
}

// MemSink collects transfer files in memory
type MemSink struct {
	mu    sync.Mutex
	files map[string]*bytes.Buffer
}

type memFile struct {
	*bytes.Buffer
}

func (memFile) Close() error { return nil }

func (s *MemSink) Create(name string) (io.WriteCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string]*bytes.Buffer)
	}
	buf := &bytes.Buffer{}
	s.files[name] = buf
	return memFile{buf}, nil
}

func (s *MemSink) Discard(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, name)
	return nil
}

func (s *MemSink) File(name string) *bytes.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[name]
}

func (s *MemSink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for n := range s.files {
		names = append(names, n)
	}
	return names
}
