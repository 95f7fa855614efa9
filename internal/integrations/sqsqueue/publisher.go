package sqsqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	"github.com/m04kA/SMC-VenueMonitor/internal/service/notifier/message"
)

const channelName = "sqs"

var (
	// ErrInvalidConfig возвращается при пустом адресе очереди
	ErrInvalidConfig = errors.New("sqs publisher: invalid config")

	// ErrPublish возвращается при ошибке отправки сообщения в очередь
	ErrPublish = errors.New("sqs publisher: publish failed")
)

// SendMessageAPI часть клиента SQS, используемая издателем
type SendMessageAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Publisher публикует уведомления в очередь SQS для внешних обработчиков
type Publisher struct {
	api      SendMessageAPI
	queueURL string
}

// NewPublisher создает издателя поверх готового клиента
func NewPublisher(api SendMessageAPI, queueURL string) (*Publisher, error) {
	if queueURL == "" {
		return nil, fmt.Errorf("%w: queue_url is required", ErrInvalidConfig)
	}
	return &Publisher{api: api, queueURL: queueURL}, nil
}

// NewPublisherFromEnv создает клиент SQS из стандартной цепочки AWS credentials
func NewPublisherFromEnv(ctx context.Context, region, queueURL string) (*Publisher, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load aws config: %v", ErrInvalidConfig, err)
	}

	return NewPublisher(sqs.NewFromConfig(cfg), queueURL)
}

// Name возвращает имя канала
func (p *Publisher) Name() string {
	return channelName
}

// Send публикует уведомление в формате GenericPayload
func (p *Publisher) Send(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(message.NewGenericPayload(n))
	if err != nil {
		return fmt.Errorf("%w: failed to encode payload: %v", ErrPublish, err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"kind": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(n.Kind)),
			},
			"venue_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.VenueID),
			},
			"date": {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.Date),
			},
		},
	}

	if _, err := p.api.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}
