package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/models"
	"github.com/jhillyerd/enmime"
)

type smtpSender struct {
	cfg    config.Mail
	sender enmime.Sender
	logger *logger.Logger
}

// NewSender returns an SMTP backed Sender for cfg. With an empty cfg.Host the
// returned Sender only logs the confirmation link.
func NewSender(cfg config.Mail, log *logger.Logger) Sender {
	if cfg.Host == "" {
		log.Warn().Msg("mail host is not configured, confirmation links will only be logged")
		return &logSender{logger: log}
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return newSMTPSender(cfg, enmime.NewSMTP(addr, auth), log)
}

func newSMTPSender(cfg config.Mail, sender enmime.Sender, log *logger.Logger) *smtpSender {
	return &smtpSender{cfg: cfg, sender: sender, logger: log}
}

func (s *smtpSender) SendConfirmation(ctx context.Context, email models.ConfirmationEmail) error {
	msg, err := buildConfirmation(s.cfg, email)
	if err != nil {
		return err
	}

	// enmime senders are not context aware, so a cancelled context is
	// honoured only before the SMTP conversation starts.
	if err = ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSendingMessage, err)
	}

	if err = msg.Send(s.sender); err != nil {
		s.logger.Err(err).Str("to", email.ToEmail).Msg("error sending confirmation email")
		return fmt.Errorf("%w: %w", ErrSendingMessage, err)
	}

	s.logger.Debug().Str("to", email.ToEmail).Msg("confirmation email sent")
	return nil
}

type logSender struct {
	logger *logger.Logger
}

func (s *logSender) SendConfirmation(_ context.Context, email models.ConfirmationEmail) error {
	if email.ToEmail == "" {
		return ErrEmptyRecipient
	}
	s.logger.Info().
		Str("to", email.ToEmail).
		Str("link", email.Link).
		Msg("confirmation email (delivery disabled)")
	return nil
}
