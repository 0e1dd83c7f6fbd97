package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

// Message is one queued notification.
type Message struct {
	Subject string
	Body    string
}

// Dispatcher decouples notification delivery from the request that
// produced it: Enqueue never blocks, a single worker drains the queue
// with bounded retries, and every failure ends in the log rather than
// in a response.
type Dispatcher struct {
	sender   Sender
	logger   *log.Logger
	queue    chan Message
	attempts int
	backoff  time.Duration
	wg       sync.WaitGroup
	once     sync.Once
}

func NewDispatcher(sender Sender, logger *log.Logger) *Dispatcher {
	d := &Dispatcher{
		sender:   sender,
		logger:   logger,
		queue:    make(chan Message, 64),
		attempts: 3,
		backoff:  2 * time.Second,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue queues msg for delivery. When the queue is full the message
// is dropped with a log line; notifications are best effort.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.logger.Printf("notify: queue full, dropping %q", msg.Subject)
	}
}

// Close stops accepting messages and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	var err error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = d.sender.Send(ctx, msg.Subject, msg.Body)
		cancel()
		if err == nil {
			return
		}
		if attempt < d.attempts {
			time.Sleep(d.backoff)
		}
	}
	d.logger.Printf("notify: giving up on %q after %d attempts: %v", msg.Subject, d.attempts, err)
}
