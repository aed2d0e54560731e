package ses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/portfolio-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	out   *sesv2.SendEmailOutput
	err   error
	calls int
}

func (f *fakeSES) SendEmail(_ context.Context, _ *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.calls++
	return f.out, f.err
}

func TestSend_HappyPath(t *testing.T) {
	client := &fakeSES{out: &sesv2.SendEmailOutput{MessageId: aws.String("msg-123")}}
	m := newMailerWithClient(client, "hello@mysite.dev", true)

	res, err := m.Send(context.Background(), "user@example.com", "https://mysite.dev/resume/download?token=x", time.Now().Add(6*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "msg-123", res.MessageID)
	assert.Equal(t, "ses", res.Provider)
	assert.Equal(t, 1, client.calls)
}

func TestSend_MissingSender_IsConfigurationError(t *testing.T) {
	client := &fakeSES{out: &sesv2.SendEmailOutput{MessageId: aws.String("msg-123")}}
	m := newMailerWithClient(client, "", true)

	_, err := m.Send(context.Background(), "user@example.com", "https://x", time.Now())
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Zero(t, client.calls)
}

func TestSend_ConsumerSenderDomain_RejectedInProduction(t *testing.T) {
	client := &fakeSES{out: &sesv2.SendEmailOutput{MessageId: aws.String("msg-123")}}
	m := newMailerWithClient(client, "me@gmail.com", true)

	_, err := m.Send(context.Background(), "user@example.com", "https://x", time.Now())
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Zero(t, client.calls)
}

func TestSend_ConsumerSenderDomain_AllowedInDevelopment(t *testing.T) {
	client := &fakeSES{out: &sesv2.SendEmailOutput{MessageId: aws.String("msg-123")}}
	m := newMailerWithClient(client, "me@gmail.com", false)

	_, err := m.Send(context.Background(), "user@example.com", "https://x", time.Now())
	assert.NoError(t, err)
}

func TestSend_ProviderError_IsDispatchError(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	m := newMailerWithClient(client, "hello@mysite.dev", true)

	_, err := m.Send(context.Background(), "user@example.com", "https://x", time.Now())
	assert.ErrorIs(t, err, domain.ErrDispatch)
}

// A provider response without a message id is a failure even when no transport
// error occurred.
func TestSend_MissingMessageID_IsDispatchError(t *testing.T) {
	client := &fakeSES{out: &sesv2.SendEmailOutput{}}
	m := newMailerWithClient(client, "hello@mysite.dev", true)

	_, err := m.Send(context.Background(), "user@example.com", "https://x", time.Now())
	assert.ErrorIs(t, err, domain.ErrDispatch)

	client.out = &sesv2.SendEmailOutput{MessageId: aws.String("")}
	_, err = m.Send(context.Background(), "user@example.com", "https://x", time.Now())
	assert.ErrorIs(t, err, domain.ErrDispatch)
}
