package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"

	"eventhub/config"
	"eventhub/infras/otel"
	"eventhub/shared/constant"

	mailjet "github.com/mailjet/mailjet-apiv3-go"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName = "mailer"
)

// ConfirmationEmail carries everything the booking confirmation template needs.
type ConfirmationEmail struct {
	ToName    string
	ToEmail   string
	EventName string
	EventDate string
	Amount    int64
}

type Mailer interface {
	SendBookingConfirmation(ctx context.Context, email ConfirmationEmail) error
}

type mailjetImpl struct {
	client *mailjet.Client
	config *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Mailer {
	var client *mailjet.Client
	if cfg.External.Email.Enable {
		client = mailjet.NewMailjetClient(cfg.External.Email.PublicKey, cfg.External.Email.PrivateKey)

		log.Info().Str("sender", cfg.External.Email.SenderEmail).Msg("Mailjet client initialized")
	} else {
		log.Warn().Msg("Email sending disabled, confirmations will be logged only")
	}

	return &mailjetImpl{
		client: client,
		config: cfg,
		otel:   ot,
	}
}

func (m *mailjetImpl) SendBookingConfirmation(ctx context.Context, email ConfirmationEmail) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".SendBookingConfirmation")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"email.to":    email.ToEmail,
		"email.event": email.EventName,
	})

	if m.client == nil {
		log.Info().
			Str("to", email.ToEmail).
			Str("event", email.EventName).
			Msg("Email disabled, skipping booking confirmation")

		return nil
	}

	subject := fmt.Sprintf("Booking Confirmed: %s", email.EventName)
	textPart := fmt.Sprintf(
		"Dear %s,\n\nYour booking for %s on %s is confirmed.\nAmount paid: %d.\n\nThank you for choosing %s!",
		email.ToName, email.EventName, email.EventDate, email.Amount, m.config.External.Email.SenderName,
	)

	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: m.config.External.Email.SenderEmail,
					Name:  m.config.External.Email.SenderName,
				},
				To: &mailjet.RecipientsV31{
					{
						Email: email.ToEmail,
						Name:  email.ToName,
					},
				},
				Subject:  subject,
				TextPart: textPart,
			},
		},
	}

	if _, err = m.client.SendMailV31(&messages); err != nil {
		log.Error().Err(err).Str("to", email.ToEmail).Msg("failed to send booking confirmation email")

		return fmt.Errorf("failed to send booking confirmation email: %w", err)
	}

	log.Info().Str("to", email.ToEmail).Str("event", email.EventName).Msg("Booking confirmation email sent")

	return nil
}
