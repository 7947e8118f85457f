package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"claimdesk/internal/domain"
	"claimdesk/internal/email"
	"claimdesk/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendPasswordResetEmail(ctx context.Context, brand *domain.TenantBranding, to port.EmailRecipient, resetToken string) error {
	return s.send(ctx, to.Email, email.PasswordReset(brand, s.frontendURL, to.Name, resetToken))
}

func (s *sesSender) SendDocumentRejectedEmail(ctx context.Context, brand *domain.TenantBranding, to port.EmailRecipient, claim *domain.Claim, documentName, reason string) error {
	return s.send(ctx, to.Email, email.DocumentRejected(brand, s.frontendURL, to.Name, claim, documentName, reason))
}

func (s *sesSender) SendClaimVerifiedEmail(ctx context.Context, brand *domain.TenantBranding, to port.EmailRecipient, claim *domain.Claim) error {
	return s.send(ctx, to.Email, email.ClaimVerified(brand, s.frontendURL, to.Name, claim))
}

func (s *sesSender) send(ctx context.Context, toEmail string, msg email.Message) error {
	name := s.fromName
	if msg.FromName != "" {
		name = msg.FromName
	}
	from := fmt.Sprintf("%s <%s>", name, s.fromAddress)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
