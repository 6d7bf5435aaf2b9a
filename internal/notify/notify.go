// Package notify delivers the "new nomination" email. Delivery is a
// side effect of an already-persisted submission: messages go through an
// in-process dispatcher and are retried, so a mail-provider outage never
// blocks nomination intake.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

// Nomination carries the submitted fields into the email body.
type Nomination struct {
	Name      string
	From      string
	Expertise string
	Link      string
	Reason    string
}

// Mailer sends a single nomination notification.
type Mailer interface {
	Send(ctx context.Context, n Nomination) error
}

// Dispatcher queues notifications and delivers them on a worker goroutine
// with exponential backoff.
type Dispatcher struct {
	mailer Mailer
	log    *slog.Logger
	ch     chan Nomination
	wg     sync.WaitGroup
	once   sync.Once
}

// NewDispatcher creates a bounded dispatcher. size is the queue capacity.
func NewDispatcher(mailer Mailer, size int, log *slog.Logger) *Dispatcher {
	if size <= 0 {
		size = 64
	}
	return &Dispatcher{
		mailer: mailer,
		log:    log,
		ch:     make(chan Nomination, size),
	}
}

// Start launches the delivery worker. ctx cancels in-flight retries.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for n := range d.ch {
			d.deliver(ctx, n)
		}
	}()
}

// Enqueue hands a notification to the worker without blocking. A full
// queue drops the message; the submission it belongs to already succeeded.
func (d *Dispatcher) Enqueue(n Nomination) {
	select {
	case d.ch <- n:
	default:
		d.log.Warn("notify: queue full, dropping notification", "name", n.Name)
	}
}

// Close stops accepting messages and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.ch) })
	d.wg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, n Nomination) {
	backoff := retry.WithMaxRetries(4, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := d.mailer.Send(ctx, n); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		d.log.Error("notify: giving up on notification", "name", n.Name, "error", err)
		return
	}
	d.log.Info("notify: notification sent", "name", n.Name)
}

// Nop is a Mailer that only logs; used when SMTP is not configured.
type Nop struct {
	Log *slog.Logger
}

func (m Nop) Send(_ context.Context, n Nomination) error {
	m.Log.Info("notify: mail not configured, skipping", "name", n.Name)
	return nil
}

func body(n Nomination) string {
	return fmt.Sprintf(
		"Name: %s\nFrom: %s\nExpertise: %s\nLink: %s\nReason: %s\n",
		n.Name, n.From, n.Expertise, n.Link, n.Reason,
	)
}
