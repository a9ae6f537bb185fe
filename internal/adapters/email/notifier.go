package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventlottery/internal/domain"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// NotifierConfig holds configuration for creating a notifier.
type NotifierConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewNotifier creates a notifier from config. Provider "ses" sends email
// via AWS SES; "noop" or unknown uses a no-op notifier.
func NewNotifier(config NotifierConfig) (domain.Notifier, error) {
	switch config.Provider {
	case "ses":
		sesConfig := config.SES
		if sesConfig.InsecureSkipVerify {
			log.Printf("[NOTIFIER] WARNING: TLS certificate verification is disabled for SES. Use only in development.")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: sesConfig.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					sesConfig.AccessKeyID,
					sesConfig.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		client := ses.NewFromConfig(awsCfg)
		return &sesNotifier{
			client:      client,
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
		}, nil
	case "noop":
		return &noopNotifier{}, nil
	default:
		log.Printf("[NOTIFIER] Unknown provider %q, using noop", config.Provider)
		return &noopNotifier{}, nil
	}
}

type sesNotifier struct {
	client      *ses.Client
	fromAddress string
	fromName    string
}

// SendToRecipients delivers one message to all recipients in a single SES
// call. Recipients go on BCC so entrant emails are not disclosed to each
// other.
func (s *sesNotifier) SendToRecipients(ctx context.Context, emails []string, title, body string) error {
	if len(emails) == 0 {
		return nil
	}

	source := s.fromAddress
	if s.fromName != "" {
		source = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}
	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses:  []string{s.fromAddress},
			BccAddresses: emails,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(title),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send to %d recipients: %w", len(emails), err)
	}
	return nil
}

type noopNotifier struct{}

func (n *noopNotifier) SendToRecipients(ctx context.Context, emails []string, title, body string) error {
	log.Printf("[NOTIFIER] noop: %q to %d recipients", title, len(emails))
	return nil
}
