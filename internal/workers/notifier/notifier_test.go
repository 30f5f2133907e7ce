package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"eventhub/config"
	kafkaMocks "eventhub/infras/kafka/mocks"
	"eventhub/infras/mailer"
	mailerMocks "eventhub/infras/mailer/mocks"
	"eventhub/infras/otel/mocks"
	"eventhub/internal/domains/booking/model/dto"
	"eventhub/internal/workers/notifier"
)

func TestNotifier_Run(t *testing.T) {
	event := dto.BookingCreatedEvent{
		BookingID:    "b1",
		UserName:     "Test User",
		UserEmail:    "test@example.com",
		ServiceTitle: "Royal Wedding Package",
		Date:         "2026-12-01",
		TotalAmount:  150000,
	}

	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	tests := []struct {
		name      string
		message   kafkaGo.Message
		setupMail func(m *mailerMocks.MockMailer)
	}{
		{
			name:    "valid event sends confirmation email",
			message: kafkaGo.Message{Key: []byte("b1"), Value: payload},
			setupMail: func(m *mailerMocks.MockMailer) {
				m.EXPECT().
					SendBookingConfirmation(gomock.Any(), mailer.ConfirmationEmail{
						ToName:    "Test User",
						ToEmail:   "test@example.com",
						EventName: "Royal Wedding Package",
						EventDate: "2026-12-01",
						Amount:    150000,
					}).
					Return(nil)
			},
		},
		{
			name:      "malformed event is skipped",
			message:   kafkaGo.Message{Key: []byte("b2"), Value: []byte("not json")},
			setupMail: func(m *mailerMocks.MockMailer) {},
		},
		{
			name:    "mailer failure does not panic",
			message: kafkaGo.Message{Key: []byte("b3"), Value: payload},
			setupMail: func(m *mailerMocks.MockMailer) {
				m.EXPECT().
					SendBookingConfirmation(gomock.Any(), gomock.Any()).
					Return(errors.New("smtp down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockKafka := kafkaMocks.NewMockClient(ctrl)
			mockMailer := mailerMocks.NewMockMailer(ctrl)
			mockOtel := mocks.NewOtel()

			cfg := &config.Config{}
			cfg.Kafka.ConsumerGroup = "eventhub-notifier"
			cfg.Kafka.Topics.BookingCreated = "bookings.created"

			tt.setupMail(mockMailer)

			mockKafka.EXPECT().
				Consume(gomock.Any(), "eventhub-notifier", "bookings.created", gomock.Any()).
				Do(func(_ context.Context, _, _ string, handler func(kafkaGo.Message)) {
					handler(tt.message)
				})

			worker := notifier.New(cfg, mockKafka, mockMailer, mockOtel)
			worker.Run(context.Background())
		})
	}
}
