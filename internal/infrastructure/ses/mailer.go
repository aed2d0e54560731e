package ses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/domain"
)

const providerName = "ses"

// consumerDomains are mailbox providers that must never appear as the sender:
// mail sent "from" them through SES fails SPF/DKIM alignment and lands in spam.
// Enforced in production mode only so local setups can use throwaway senders.
var consumerDomains = map[string]struct{}{
	"gmail.com":   {},
	"yahoo.com":   {},
	"hotmail.com": {},
	"outlook.com": {},
	"aol.com":     {},
	"icloud.com":  {},
}

// api is the slice of the SES v2 client the mailer uses.
type api interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Mailer sends resume download links through AWS SES. Retries are deliberately
// the caller's concern: a naive retry loop here would mean duplicate emails.
type Mailer struct {
	client     api
	sender     string
	production bool
}

// NewMailer builds a Mailer over a real SES v2 client.
func NewMailer(cfg *config.Config) *Mailer {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.SESRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		panic("failed to load AWS config for SES: " + err.Error())
	}

	clientOpts := []func(*sesv2.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sesv2.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}

	return &Mailer{
		client:     sesv2.NewFromConfig(awsCfg, clientOpts...),
		sender:     cfg.SESSender,
		production: cfg.IsProduction(),
	}
}

// newMailerWithClient exists for tests.
func newMailerWithClient(client api, sender string, production bool) *Mailer {
	return &Mailer{client: client, sender: sender, production: production}
}

// Send emails the download link to the recipient. There is no partial success:
// missing sender configuration, a denylisted sender domain, a provider error,
// or a provider response without a message id all fail the call.
func (m *Mailer) Send(ctx context.Context, to, downloadURL string, expiresAt time.Time) (*domain.DispatchResult, error) {
	if strings.TrimSpace(m.sender) == "" {
		return nil, fmt.Errorf("SES sender address not set: %w", domain.ErrConfiguration)
	}
	if m.production {
		if err := checkSenderDomain(m.sender); err != nil {
			return nil, err
		}
	}

	subject := "Your resume download link"
	body := fmt.Sprintf(
		"Hi,\n\nHere is your resume download link:\n\n%s\n\nThe link expires at %s and can be used up to a limited number of times.\n",
		downloadURL, expiresAt.UTC().Format(time.RFC1123),
	)

	out, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.sender),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ses send: %v: %w", err, domain.ErrDispatch)
	}
	// Success means the provider confirmed the send. A response without a
	// message id is a failure even though no transport error occurred.
	if out.MessageId == nil || *out.MessageId == "" {
		return nil, fmt.Errorf("ses returned no message id: %w", domain.ErrDispatch)
	}
	return &domain.DispatchResult{MessageID: *out.MessageId, Provider: providerName}, nil
}

func checkSenderDomain(sender string) error {
	at := strings.LastIndex(sender, "@")
	if at < 0 {
		return fmt.Errorf("sender %q has no domain: %w", sender, domain.ErrConfiguration)
	}
	dom := strings.ToLower(sender[at+1:])
	if _, denied := consumerDomains[dom]; denied {
		return fmt.Errorf("sender domain %q is a consumer mailbox provider: %w", dom, domain.ErrConfiguration)
	}
	return nil
}
