package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Mailer sends transactional email through Amazon SES. When no sender address
// is configured it runs disabled and every send becomes a logged no-op.
type Mailer struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	logger    *slog.Logger
}

func New(ctx context.Context, region, fromEmail, fromName string, logger *slog.Logger) (*Mailer, error) {
	if fromEmail == "" {
		logger.Info("mail sending disabled: SES_FROM_EMAIL not configured")
		return &Mailer{enabled: false, logger: logger}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("mail sending enabled", "from", fromEmail, "region", region)
	return &Mailer{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		logger:    logger,
	}, nil
}

// SendWelcome greets a freshly registered user.
func (m *Mailer) SendWelcome(ctx context.Context, toEmail, toName string) error {
	subject := "Welcome to the gym!"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour account is ready. Log in to browse the schedule and book your first class.\n\nSee you at the gym!",
		toName,
	)
	return m.send(ctx, toEmail, subject, body)
}

// SendPasswordReset mails a reset link. The text is composed by the caller so
// the reset URL and wording stay with the auth flow.
func (m *Mailer) SendPasswordReset(ctx context.Context, toEmail, toName, resetURL, text string) error {
	subject := "Password Reset"
	if text == "" {
		text = fmt.Sprintf("Hi %s,\n\nPlease go to the following link to reset your password: %s\n\nThe link expires in 10 minutes.", toName, resetURL)
	}
	return m.send(ctx, toEmail, subject, text)
}

func (m *Mailer) send(ctx context.Context, toEmail, subject, body string) error {
	if !m.enabled {
		m.logger.Info("skipping email send (mailer disabled)", "to", toEmail, "subject", subject)
		return nil
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	m.logger.Debug("email sent", "to", toEmail, "subject", subject)
	return nil
}
