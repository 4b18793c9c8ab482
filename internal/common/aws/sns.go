// internal/common/aws/sns.go
package aws

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSService is the subset of *sns.Client used for mocking.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// TopicPublisher publishes messages to a single SNS topic.
type TopicPublisher struct {
	client   SNSService
	topicARN string
}

func NewTopicPublisher(ctx context.Context, region, topicARN string) (*TopicPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &TopicPublisher{client: sns.NewFromConfig(cfg), topicARN: topicARN}, nil
}

func NewTopicPublisherWithClient(client SNSService, topicARN string) *TopicPublisher {
	return &TopicPublisher{client: client, topicARN: topicARN}
}

// Publish returns the SNS message id.
func (p *TopicPublisher) Publish(ctx context.Context, subject, message string) (string, error) {
	input := &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(message),
	}
	if subject != "" {
		input.Subject = aws.String(truncateSubject(subject))
	}

	out, err := p.client.Publish(ctx, input)
	if err != nil {
		return "", fmt.Errorf("sns publish: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}

// MaxSubjectLength is the SNS subject limit.
const MaxSubjectLength = 100

// truncateSubject caps subject at MaxSubjectLength bytes without splitting a rune.
func truncateSubject(subject string) string {
	if len(subject) <= MaxSubjectLength {
		return subject
	}
	n := MaxSubjectLength
	for n > 0 && !utf8.RuneStart(subject[n]) {
		n--
	}
	return subject[:n]
}
