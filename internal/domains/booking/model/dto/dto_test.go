package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eventhub/internal/domains/booking/model"
	"eventhub/internal/domains/booking/model/dto"
)

func TestPaymentCard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		card    dto.PaymentCard
		wantErr bool
	}{
		{
			name: "valid card",
			card: dto.PaymentCard{
				CardNumber: "4111111111111111",
				CardName:   "Test User",
				CardExpiry: "12/30",
				CardCVV:    "123",
			},
		},
		{
			name: "card number with spaces",
			card: dto.PaymentCard{
				CardNumber: "4111 1111 1111 1111",
				CardName:   "Test User",
				CardExpiry: "12/30",
				CardCVV:    "123",
			},
		},
		{
			name: "card number too short",
			card: dto.PaymentCard{
				CardNumber: "1234567890",
				CardName:   "Test User",
				CardExpiry: "12/30",
				CardCVV:    "123",
			},
			wantErr: true,
		},
		{
			name: "missing expiry",
			card: dto.PaymentCard{
				CardNumber: "4111111111111111",
				CardName:   "Test User",
				CardCVV:    "123",
			},
			wantErr: true,
		},
		{
			name: "cvv too short",
			card: dto.PaymentCard{
				CardNumber: "4111111111111111",
				CardName:   "Test User",
				CardExpiry: "12/30",
				CardCVV:    "12",
			},
			wantErr: true,
		},
		{
			name: "missing cardholder name",
			card: dto.PaymentCard{
				CardNumber: "4111111111111111",
				CardExpiry: "12/30",
				CardCVV:    "123",
			},
			wantErr: true,
		},
		{
			name: "non-digit card number",
			card: dto.PaymentCard{
				CardNumber: "not-a-card-number",
				CardName:   "Test User",
				CardExpiry: "12/30",
				CardCVV:    "123",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		ServiceID:   "s1",
		Date:        "2026-10-20",
		GuestCount:  2,
		TotalAmount: 150000,
	}

	booking, err := req.ToModel("user-1", "Test User", "test@example.com", "Royal Wedding Package", 150000)
	assert.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "Test User", booking.UserName)
	assert.Equal(t, "test@example.com", booking.UserEmail)
	assert.Equal(t, "s1", booking.ServiceID)
	assert.Equal(t, "Royal Wedding Package", booking.ServiceTitle)
	assert.Equal(t, 2026, booking.Date.Year())
	assert.Equal(t, int64(150000), booking.TotalAmount)
	assert.Equal(t, model.StatusConfirmed, booking.Status)
	assert.False(t, booking.CreatedAt.IsZero())
}

func TestCreateBookingRequest_ToModelInvalidDate(t *testing.T) {
	req := dto.CreateBookingRequest{
		ServiceID: "s1",
		Date:      "20-10-2026",
	}

	_, err := req.ToModel("user-1", "Test User", "test@example.com", "Royal Wedding Package", 150000)
	assert.Error(t, err)
}

func TestBookingCreatedEvent_FromModel(t *testing.T) {
	var booking model.Booking

	req := dto.CreateBookingRequest{
		ServiceID:   "s4",
		Date:        "2026-10-20",
		GuestCount:  100,
		TotalAmount: 50000,
	}

	booking, err := req.ToModel("user-1", "Test User", "test@example.com", "Premium Buffet Catering", 50000)
	assert.NoError(t, err)

	var event dto.BookingCreatedEvent
	event.FromModel(booking)

	assert.Equal(t, booking.ID, event.BookingID)
	assert.Equal(t, "Test User", event.UserName)
	assert.Equal(t, "test@example.com", event.UserEmail)
	assert.Equal(t, "Premium Buffet Catering", event.ServiceTitle)
	assert.Equal(t, "2026-10-20", event.Date)
	assert.Equal(t, int64(50000), event.TotalAmount)
}
