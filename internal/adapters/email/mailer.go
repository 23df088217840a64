package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/eventhub/eventhub/internal/domain"
)

const (
	ProviderSES  = "ses"
	ProviderNoop = "noop"

	sendTimeout = 15 * time.Second
)

// SESConfig holds the AWS settings of the SES provider.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig selects and configures the mail provider.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// sesAPI is the part of the SES client the mailer uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewMailer returns the mailer for config.Provider. Review emails are
// optional, so an empty or unknown provider falls back to logging them.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch config.Provider {
	case ProviderSES:
		return newSESMailer(config, logger)
	case ProviderNoop, "":
	default:
		logger.Warn("unknown email provider, emails will only be logged", "provider", config.Provider)
	}
	return &noopMailer{logger: logger}, nil
}

func newSESMailer(config MailerConfig, logger *slog.Logger) (*sesMailer, error) {
	if config.FromAddress == "" {
		return nil, errors.New("ses mailer requires a from address")
	}
	if config.SES.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for SES")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: config.SES.InsecureSkipVerify, //nolint:gosec
		MinVersion:         tls.VersionTLS12,
	}
	creds := credentials.NewStaticCredentialsProvider(config.SES.AccessKeyID, config.SES.SecretAccessKey, "")
	client := ses.NewFromConfig(aws.Config{
		Region:      config.SES.Region,
		Credentials: aws.NewCredentialsCache(creds),
		HTTPClient:  &http.Client{Transport: transport, Timeout: sendTimeout},
	})

	return &sesMailer{
		client:      client,
		fromAddress: config.FromAddress,
		fromName:    config.FromName,
		logger:      logger,
	}, nil
}

type sesMailer struct {
	client      sesAPI
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

func (s *sesMailer) Send(ctx context.Context, to, subject, html, text string) error {
	body := &types.Body{}
	if html != "" {
		body.Html = utf8Content(html)
	}
	if text != "" {
		body.Text = utf8Content(text)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	out, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(s.source()),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message:     &types.Message{Subject: utf8Content(subject), Body: body},
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", to, err)
	}
	s.logger.Info("email sent", "provider", ProviderSES, "message_id", aws.ToString(out.MessageId))
	return nil
}

// source formats the sender as "Name <address>" when a name is configured.
func (s *sesMailer) source() string {
	if s.fromName == "" {
		return s.fromAddress
	}
	return (&mail.Address{Name: s.fromName, Address: s.fromAddress}).String()
}

func utf8Content(data string) *types.Content {
	return &types.Content{Data: aws.String(data), Charset: aws.String("UTF-8")}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(_ context.Context, to, subject, _, _ string) error {
	n.logger.Info("email not delivered, no provider configured", "to", to, "subject", subject)
	return nil
}
