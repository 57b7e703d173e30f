package dao

import (
	"sync"
)

// Store owns the shared database handle. It is created once at
// application start and handed to everything that needs data access.
// Open is idempotent: only one initialization is ever in flight and
// concurrent callers block until it resolves, sharing its outcome. An
// initialization error is delivered to every waiting caller and the
// handle stays unset so a later Open can retry.
type Store struct {
	mu       sync.Mutex
	dbPath   string
	conn     *SGDB
	inflight *openCall
}

type openCall struct {
	done chan struct{}
	conn *SGDB
	err  error
}

func NewStore(dbPath string) *Store {
	return &Store{dbPath: dbPath}
}

func (s *Store) Open() (*SGDB, error) {
	s.mu.Lock()
	if s.conn != nil {
		conn := s.conn
		s.mu.Unlock()
		return conn, nil
	}
	if s.inflight != nil {
		call := s.inflight
		s.mu.Unlock()
		<-call.done
		return call.conn, call.err
	}
	call := &openCall{done: make(chan struct{})}
	s.inflight = call
	s.mu.Unlock()

	call.conn, call.err = OpenSGDB(s.dbPath)

	s.mu.Lock()
	s.inflight = nil
	if call.err == nil {
		s.conn = call.conn
	}
	s.mu.Unlock()
	close(call.done)
	return call.conn, call.err
}

// Invalidate drops the cached handle so the next Open reinitializes
// instead of reusing a dead connection
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			logger.Errorw("could not close invalidated connection", "error", err)
		}
		s.conn = nil
	}
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
