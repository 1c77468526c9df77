package player

import "sync"

// mailbox delivers events in order without ever blocking the sender.
// The audio callback and the position ticker must not stall on a slow
// consumer, so pending events are held in a slice until read.
type mailbox struct {
	in        chan Event
	out       chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func newMailbox() *mailbox {
	m := &mailbox{
		in:   make(chan Event),
		out:  make(chan Event),
		done: make(chan struct{}),
	}
	go m.run()
	return m
}

func (m *mailbox) run() {
	defer close(m.out)

	var pending []Event
	for {
		var out chan Event
		var next Event
		if len(pending) > 0 {
			out = m.out
			next = pending[0]
		}

		select {
		case e := <-m.in:
			pending = append(pending, e)
		case out <- next:
			pending = pending[1:]
		case <-m.done:
			return
		}
	}
}

// put queues e. It returns without delivering once the mailbox is closed.
func (m *mailbox) put(e Event) {
	select {
	case m.in <- e:
	case <-m.done:
	}
}

// Out returns the receive side. It is closed after close.
func (m *mailbox) Out() <-chan Event {
	return m.out
}

func (m *mailbox) close() {
	m.closeOnce.Do(func() { close(m.done) })
}
