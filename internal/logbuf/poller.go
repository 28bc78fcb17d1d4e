package logbuf

import (
	"sync"
	"time"
)

// Poller runs a callback on a fixed interval. Start while running is a
// no-op, so repeated starts can never stack timers; Stop is
// idempotent.
type Poller struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

func NewPoller(interval time.Duration, fn func()) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Poller{interval: interval, fn: fn}
}

func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	stop := p.stopCh
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.fn()
			case <-stop:
				return
			}
		}
	}()
}

func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	close(p.stopCh)
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
