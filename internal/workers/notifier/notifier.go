package notifier

import (
	"context"

	"eventhub/config"
	"eventhub/infras/kafka"
	"eventhub/infras/mailer"
	"eventhub/infras/otel"
	"eventhub/internal/domains/booking/model/dto"
	"eventhub/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Notifier consumes booking created events and sends confirmation emails.
// Delivery is best effort: a failed email is logged and the offset moves on.
type Notifier struct {
	cfg    *config.Config
	kafka  kafka.Client
	mailer mailer.Mailer
	otel   otel.Otel
}

func New(cfg *config.Config, kafkaClient kafka.Client, mailerClient mailer.Mailer, otel otel.Otel) *Notifier {
	return &Notifier{
		cfg:    cfg,
		kafka:  kafkaClient,
		mailer: mailerClient,
		otel:   otel,
	}
}

// Run blocks consuming the booking created topic until the context is done.
func (n *Notifier) Run(ctx context.Context) {
	topic := n.cfg.Kafka.Topics.BookingCreated

	log.Info().Str("topic", topic).Msg("starting booking notifier")

	n.kafka.Consume(ctx, n.cfg.Kafka.ConsumerGroup, topic, n.handle)
}

func (n *Notifier) handle(message kafkaGo.Message) {
	ctx, scope := n.otel.NewScope(context.Background(), constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingCreated")
	defer scope.End()

	event, err := kafka.DecodeKafkaMessage[dto.BookingCreatedEvent](message)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode booking created event")
		scope.TraceError(err)

		return
	}

	email := mailer.ConfirmationEmail{
		ToName:    event.UserName,
		ToEmail:   event.UserEmail,
		EventName: event.ServiceTitle,
		EventDate: event.Date,
		Amount:    event.TotalAmount,
	}

	if err := n.mailer.SendBookingConfirmation(ctx, email); err != nil {
		log.Error().Err(err).Str("booking_id", event.BookingID).Msg("failed to send booking confirmation email")
		scope.TraceError(err)

		return
	}

	log.Info().Str("booking_id", event.BookingID).Str("to", event.UserEmail).Msg("booking confirmation email sent")
}
