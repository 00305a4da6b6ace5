package sqs

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kinlabs/kin-paymaster/internal/logger"
)

// Publisher delivers paymaster fact records to an SQS queue for downstream
// indexers and monitors.
type Publisher struct {
	client   *awssqs.Client
	queueURL string
}

// NewPublisher creates a Publisher for the given queue URL using the default
// AWS configuration chain.
func NewPublisher(ctx context.Context, queueURL string) (*Publisher, error) {
	if queueURL == "" {
		return nil, errors.New("SQS queue URL is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load AWS SDK config")
	}

	return &Publisher{
		client:   awssqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}, nil
}

// Publish sends one fact record to the queue. The event type travels as a
// message attribute so consumers can filter without parsing the body.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event payload")
	}

	_, err = p.client.SendMessage(ctx, &awssqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"EventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(eventType),
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to publish event to SQS")
	}

	logger.Debug("Published paymaster event to SQS",
		zap.String("event_type", eventType),
		zap.String("queue_url", p.queueURL),
	)
	return nil
}
