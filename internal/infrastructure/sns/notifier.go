package sns

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/portfolio-api/internal/config"
)

// LeadNotifier publishes an alert when someone requests the resume, so the
// site owner hears about new leads without checking logs. It sits outside the
// credential pipeline: a failed publish never fails the request.
type LeadNotifier interface {
	LeadAlert(ctx context.Context, email string) error
}

type notifier struct {
	client   *sns.Client
	topicARN string
}

func NewNotifier(cfg *config.Config) (LeadNotifier, error) {
	if cfg.SNSTopicARN == "" {
		return nil, fmt.Errorf("no SNS lead topic configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &notifier{client: sns.NewFromConfig(awsCfg), topicARN: cfg.SNSTopicARN}, nil
}

func (n *notifier) LeadAlert(ctx context.Context, email string) error {
	msg := fmt.Sprintf("New resume request from %s", email)
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &n.topicARN,
		Message:  &msg,
	})
	return err
}
