package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eventhub/eventhub/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendEventStatusChanged tells a submitter that their event was approved or rejected,
// using the "event_status" template.
func (s *emailService) SendEventStatusChanged(ctx context.Context, data *domain.EventStatusEmailData) error {
	if data == nil {
		return fmt.Errorf("event status email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_status", data)
	if err != nil {
		return fmt.Errorf("failed to render event_status template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event status email: %w", err)
	}
	s.logger.Info("event status email sent", "to", data.Email, "status", data.Status)
	return nil
}
