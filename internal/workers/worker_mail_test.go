package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanSender struct {
	sent chan models.ConfirmationEmail
	err  error
}

func (s *chanSender) SendConfirmation(ctx context.Context, email models.ConfirmationEmail) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("send context has no deadline")
	}
	s.sent <- email
	return s.err
}

func testWorkersConfig(queue, workers int) config.Workers {
	return config.Workers{MailQueueSize: queue, MailWorkers: workers, MailSendTimeout: time.Second}
}

func TestMailWorker_DeliversQueuedEmails(t *testing.T) {
	sender := &chanSender{sent: make(chan models.ConfirmationEmail, 3)}
	w := NewMailWorker(testWorkersConfig(3, 2), sender, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Run(ctx)

	for _, to := range []string{"ann@x.com", "bob@x.com", "eve@x.com"} {
		require.NoError(t, w.Dispatch(context.Background(), models.ConfirmationEmail{ToEmail: to, Link: "l"}))
	}

	got := map[string]bool{}
	for range 3 {
		select {
		case email := <-sender.sent:
			got[email.ToEmail] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for delivery")
		}
	}
	assert.Len(t, got, 3)

	cancel()
	w.Wait()
}

func TestMailWorker_SendErrorDoesNotStopWorker(t *testing.T) {
	sender := &chanSender{sent: make(chan models.ConfirmationEmail, 2), err: errors.New("smtp down")}
	w := NewMailWorker(testWorkersConfig(2, 1), sender, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	w.Run(ctx)

	require.NoError(t, w.Dispatch(context.Background(), models.ConfirmationEmail{ToEmail: "a@x.com"}))
	require.NoError(t, w.Dispatch(context.Background(), models.ConfirmationEmail{ToEmail: "b@x.com"}))

	for range 2 {
		select {
		case <-sender.sent:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for delivery attempt")
		}
	}

	cancel()
	w.Wait()
}

func TestMailWorker_DispatchFullQueue(t *testing.T) {
	// not running, so nothing drains the queue
	w := NewMailWorker(testWorkersConfig(1, 1), &chanSender{}, logger.Nop())

	require.NoError(t, w.Dispatch(context.Background(), models.ConfirmationEmail{ToEmail: "a@x.com"}))
	assert.ErrorIs(t, w.Dispatch(context.Background(), models.ConfirmationEmail{ToEmail: "b@x.com"}), ErrMailQueueFull)
}

func TestMailWorker_DispatchCancelledContext(t *testing.T) {
	w := NewMailWorker(testWorkersConfig(1, 1), &chanSender{}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, w.Dispatch(ctx, models.ConfirmationEmail{ToEmail: "a@x.com"}), context.Canceled)
}

func TestMailWorker_StopsOnCancel(t *testing.T) {
	w := NewMailWorker(testWorkersConfig(1, 4), &chanSender{}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	w.Run(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mail workers did not stop")
	}

	assert.Eventually(t, func() bool {
		return errors.Is(w.Dispatch(context.Background(), models.ConfirmationEmail{}), ErrMailQueueClosed)
	}, time.Second, 10*time.Millisecond)
}

func TestNewMailWorker_NormalizesSizes(t *testing.T) {
	w := NewMailWorker(config.Workers{}, &chanSender{}, logger.Nop())

	assert.Equal(t, 1, cap(w.queue))
	assert.Equal(t, 1, w.workers)
}
