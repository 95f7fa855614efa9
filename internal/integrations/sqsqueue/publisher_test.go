package sqsqueue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueMonitor/internal/domain"
	"github.com/m04kA/SMC-VenueMonitor/internal/service/notifier/message"
)

type fakeSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSQS) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestNewPublisher_RequiresQueueURL(t *testing.T) {
	_, err := NewPublisher(&fakeSQS{}, "")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPublisher_Send(t *testing.T) {
	api := &fakeSQS{}
	publisher, err := NewPublisher(api, "https://sqs.ap-southeast-1.amazonaws.com/123/venues")
	require.NoError(t, err)

	n := domain.Notification{
		Kind:      domain.NotificationSlotsFound,
		Message:   "found",
		VenueID:   "1001",
		VenueName: "体育馆",
		Date:      "2025-06-01",
		Slots:     []domain.AvailableSlot{{FieldID: "f1", Time: "18:00-19:00", Price: 80}},
	}

	require.NoError(t, publisher.Send(context.Background(), n))
	require.Len(t, api.inputs, 1)

	input := api.inputs[0]
	assert.Equal(t, "https://sqs.ap-southeast-1.amazonaws.com/123/venues", aws.ToString(input.QueueUrl))
	assert.Equal(t, "1001", aws.ToString(input.MessageAttributes["venue_id"].StringValue))
	assert.Equal(t, "slots_found", aws.ToString(input.MessageAttributes["kind"].StringValue))

	var payload message.GenericPayload
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(input.MessageBody)), &payload))
	assert.Equal(t, "体育馆", payload.VenueName)
	require.Len(t, payload.AvailableSlots, 1)
	assert.Equal(t, "18:00-19:00", payload.AvailableSlots[0].Time)
}

func TestPublisher_Send_Error(t *testing.T) {
	publisher, err := NewPublisher(&fakeSQS{err: errors.New("throttled")}, "queue")
	require.NoError(t, err)

	err = publisher.Send(context.Background(), domain.Notification{})
	assert.ErrorIs(t, err, ErrPublish)
}
