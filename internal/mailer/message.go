package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/models"
	"github.com/jhillyerd/enmime"
)

const confirmationSubject = "Confirm your email"

var confirmationText = texttemplate.Must(texttemplate.New("text").Parse(
	`Hello {{.ToName}},

thank you for signing up. Please confirm your email address by opening the link below:

{{.Link}}

If you did not create an account, ignore this message.
`))

var confirmationHTML = template.Must(template.New("html").Parse(
	`<!DOCTYPE html>
<html>
<body>
<p>Hello {{.ToName}},</p>
<p>thank you for signing up. Please confirm your email address:</p>
<p><a href="{{.Link}}">Confirm email</a></p>
<p>If you did not create an account, ignore this message.</p>
</body>
</html>
`))

// buildConfirmation renders the confirmation message for email.
func buildConfirmation(cfg config.Mail, email models.ConfirmationEmail) (enmime.MailBuilder, error) {
	if email.ToEmail == "" {
		return enmime.MailBuilder{}, ErrEmptyRecipient
	}
	if email.Link == "" {
		return enmime.MailBuilder{}, ErrEmptyLink
	}

	var text, html bytes.Buffer
	if err := confirmationText.Execute(&text, email); err != nil {
		return enmime.MailBuilder{}, fmt.Errorf("%w: %w", ErrBuildingMessage, err)
	}
	if err := confirmationHTML.Execute(&html, email); err != nil {
		return enmime.MailBuilder{}, fmt.Errorf("%w: %w", ErrBuildingMessage, err)
	}

	return enmime.Builder().
		From(cfg.FromName, cfg.From).
		To(email.ToName, email.ToEmail).
		Subject(confirmationSubject).
		Text(text.Bytes()).
		HTML(html.Bytes()), nil
}
