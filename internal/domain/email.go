package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventStatusEmailData holds data for the email sent to a submitter once an admin reviewed their event.
type EventStatusEmailData struct {
	Email     string
	EventName string
	Status    EventStatus
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventStatusChanged(ctx context.Context, data *EventStatusEmailData) error
}
