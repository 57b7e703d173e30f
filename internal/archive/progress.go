package archive

import (
	"sync"
)

// Reporter receives percentage events (0-100) during a bulk transfer.
// Values are non-decreasing and the final event on success is 100.
type Reporter interface {
	Report(percent float64)
}

type ReporterFunc func(percent float64)

func (f ReporterFunc) Report(percent float64) {
	if f != nil {
		f(percent)
	}
}

// Broadcaster fans progress events out to multiple subscribers
type Broadcaster struct {
	mu   sync.Mutex
	subs []Reporter
}

func (b *Broadcaster) Subscribe(r Reporter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, r)
}

func (b *Broadcaster) Report(percent float64) {
	b.mu.Lock()
	subs := make([]Reporter, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()
	for _, s := range subs {
		s.Report(percent)
	}
}

func report(r Reporter, processed, total int) {
	if r == nil || total == 0 {
		return
	}
	r.Report(float64(processed) / float64(total) * 100)
}
