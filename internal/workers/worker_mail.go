package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/mailer"
	"github.com/MKhiriev/go-contact-book/models"
)

// MailWorker owns a bounded queue of confirmation emails drained by a fixed
// number of goroutines. Dispatch never blocks the caller.
type MailWorker struct {
	queue       chan models.ConfirmationEmail
	sender      mailer.Sender
	workers     int
	sendTimeout time.Duration

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup

	logger *logger.Logger
}

func NewMailWorker(cfg config.Workers, sender mailer.Sender, log *logger.Logger) *MailWorker {
	size := cfg.MailQueueSize
	if size <= 0 {
		size = 1
	}
	workers := cfg.MailWorkers
	if workers <= 0 {
		workers = 1
	}

	return &MailWorker{
		queue:       make(chan models.ConfirmationEmail, size),
		sender:      sender,
		workers:     workers,
		sendTimeout: cfg.MailSendTimeout,
		logger:      log,
	}
}

// Dispatch enqueues email for asynchronous delivery. It returns
// ErrMailQueueFull instead of waiting when the queue has no free slot.
func (w *MailWorker) Dispatch(ctx context.Context, email models.ConfirmationEmail) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return ErrMailQueueClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case w.queue <- email:
		return nil
	default:
		w.logger.Error().Str("to", email.ToEmail).Msg("mail queue is full, confirmation email dropped")
		return ErrMailQueueFull
	}
}

func (w *MailWorker) Run(ctx context.Context) {
	w.logger.Info().Int("workers", w.workers).Int("queue_size", cap(w.queue)).Msg("starting mail workers")

	for i := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.loop(ctx, i)
		}()
	}

	go func() {
		<-ctx.Done()
		w.mu.Lock()
		w.stopped = true
		w.mu.Unlock()
	}()
}

func (w *MailWorker) Wait() {
	w.wg.Wait()
}

func (w *MailWorker) loop(ctx context.Context, id int) {
	log := w.logger.With().Int("mail_worker", id).Logger()

	for {
		select {
		case <-ctx.Done():
			if pending := len(w.queue); pending > 0 {
				log.Warn().Int("pending", pending).Msg("mail worker stopped with undelivered emails")
			}
			return
		case email := <-w.queue:
			w.send(ctx, email)
		}
	}
}

func (w *MailWorker) send(ctx context.Context, email models.ConfirmationEmail) {
	sendCtx := ctx
	if w.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, w.sendTimeout)
		defer cancel()
	}

	if err := w.sender.SendConfirmation(sendCtx, email); err != nil {
		w.logger.Err(err).Str("to", email.ToEmail).Msg("failed to deliver confirmation email")
	}
}
