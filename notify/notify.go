// Package notify sends transactional email for booking and payment events.
// Dispatch is fire and forget: sends run on a background worker and a failed
// send is logged, never surfaced to the request that triggered it.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ruman-Islam/doctors-portal-server/models"
)

// Email is one outbound message.
type Email struct {
	ID      string
	To      string
	Subject string
	Body    string
}

// EmailSender delivers a single email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

const (
	queueSize   = 64
	sendTimeout = 15 * time.Second
)

// Dispatcher queues emails and delivers them on a single background worker.
type Dispatcher struct {
	sender EmailSender
	queue  chan Email
	done   chan struct{}
	log    zerolog.Logger

	mu     sync.Mutex
	closed bool
}

// NewDispatcher starts the worker goroutine. Call Close to drain the queue
// and stop it.
func NewDispatcher(sender EmailSender, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Email, queueSize),
		done:   make(chan struct{}),
		log:    log,
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for e := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.sender.SendEmail(ctx, e.To, e.Subject, e.Body)
		cancel()
		if err != nil {
			d.log.Error().Err(err).
				Str("email_id", e.ID).
				Str("to", e.To).
				Str("subject", e.Subject).
				Msg("email send failed")
			continue
		}
		d.log.Info().
			Str("email_id", e.ID).
			Str("to", e.To).
			Str("subject", e.Subject).
			Msg("email sent")
	}
}

// Enqueue hands an email to the worker. It never blocks and never fails:
// when the queue is full or the dispatcher is already closed the email is
// dropped with a log entry.
func (d *Dispatcher) Enqueue(e Email) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.log.Warn().
			Str("email_id", e.ID).
			Str("to", e.To).
			Msg("dispatcher closed, dropping message")
		return
	}
	select {
	case d.queue <- e:
	default:
		d.log.Warn().
			Str("email_id", e.ID).
			Str("to", e.To).
			Msg("email queue full, dropping message")
	}
}

// Close stops accepting new emails, waits for the queued ones to be sent and
// stops the worker.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

// BookingConfirmed enqueues the appointment-confirmed email for a new
// booking.
func (d *Dispatcher) BookingConfirmed(b models.Booking) {
	d.Enqueue(Email{
		To:      b.PatientEmail,
		Subject: fmt.Sprintf("Your appointment for %s is confirmed", b.Treatment),
		Body: fmt.Sprintf(
			"Dear %s, your appointment for %s on %s at %s is confirmed. Please arrive ten minutes early.",
			b.PatientName, b.Treatment, b.Date, b.Slot,
		),
	})
}

// PaymentReceived enqueues the payment-received email for a paid booking.
func (d *Dispatcher) PaymentReceived(b models.Booking, transactionID string) {
	d.Enqueue(Email{
		To:      b.PatientEmail,
		Subject: fmt.Sprintf("Payment received for %s", b.Treatment),
		Body: fmt.Sprintf(
			"Dear %s, we received your payment for %s on %s at %s. Your transaction id is %s.",
			b.PatientName, b.Treatment, b.Date, b.Slot, transactionID,
		),
	})
}
