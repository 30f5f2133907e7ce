package dto

import (
	"strings"
	"time"

	"eventhub/internal/domains/booking/model"
	"eventhub/shared"
	"eventhub/shared/constant"
	gDto "eventhub/shared/dto"
	"eventhub/shared/failure"
	gModel "eventhub/shared/model"
	"eventhub/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ServiceID   string `json:"service_id"   validate:"required"`
	Date        string `json:"date"         validate:"required,datetime=2006-01-02"`
	GuestCount  int    `json:"guest_count"  validate:"required,gte=1"`
	TotalAmount int64  `json:"total_amount" validate:"required,gt=0"`
	PaymentCard `json:"payment"`
}

// PaymentCard carries the simulated payment details. Nothing here is stored,
// it is only checked before the booking row is written.
type PaymentCard struct {
	CardNumber string `json:"card_number" validate:"required"`
	CardName   string `json:"card_name"   validate:"required"`
	CardExpiry string `json:"card_expiry" validate:"required"`
	CardCVV    string `json:"card_cvv"    validate:"required"`
}

// Validate applies the card checks used by the checkout flow: at least 13
// card digits, a non-empty expiry and name, and a CVV of 3 or more digits.
func (p PaymentCard) Validate() error {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, p.CardNumber)

	if len(digits) < 13 || p.CardExpiry == "" || len(p.CardCVV) < 3 || p.CardName == "" {
		return failure.BadRequestFromString("please enter valid card details") //nolint:wrapcheck
	}

	return nil
}

func (c *CreateBookingRequest) ToModel(userID, userName, userEmail, serviceTitle string, totalAmount int64) (model.Booking, error) {
	date, err := time.ParseInLocation(constant.BookingDateFormat, c.Date, timezone.GetLocation())
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:           uuid.NewString(),
		UserID:       userID,
		UserName:     userName,
		UserEmail:    userEmail,
		ServiceID:    c.ServiceID,
		ServiceTitle: serviceTitle,
		Date:         date,
		GuestCount:   c.GuestCount,
		TotalAmount:  totalAmount,
		Status:       model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}, nil
}

type BookingResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	ServiceID    string `json:"service_id"`
	ServiceTitle string `json:"service_title"`
	Date         string `json:"date"`
	GuestCount   int    `json:"guest_count"`
	TotalAmount  int64  `json:"total_amount"`
	Status       string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.UserName = mod.UserName
	r.UserEmail = mod.UserEmail
	r.ServiceID = mod.ServiceID
	r.ServiceTitle = mod.ServiceTitle
	r.Date = timezone.Format(mod.Date, constant.BookingDateFormat)
	r.GuestCount = mod.GuestCount
	r.TotalAmount = mod.TotalAmount
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type ServiceRevenueResponse struct {
	ServiceID    string `json:"service_id"`
	ServiceTitle string `json:"service_title"`
	Bookings     int    `json:"bookings"`
	Revenue      int64  `json:"revenue"`
}

type BookingStatsResponse struct {
	TotalBookings int                      `json:"total_bookings"`
	TotalRevenue  int64                    `json:"total_revenue"`
	TotalGuests   int                      `json:"total_guests"`
	Services      []ServiceRevenueResponse `json:"services"`
}

// BookingCreatedEvent is the payload published after a booking is persisted.
// The notifier worker consumes it to send the confirmation email.
type BookingCreatedEvent struct {
	BookingID    string `json:"booking_id"`
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	ServiceTitle string `json:"service_title"`
	Date         string `json:"date"`
	TotalAmount  int64  `json:"total_amount"`
}

func (e *BookingCreatedEvent) FromModel(mod model.Booking) {
	e.BookingID = mod.ID
	e.UserName = mod.UserName
	e.UserEmail = mod.UserEmail
	e.ServiceTitle = mod.ServiceTitle
	e.Date = timezone.Format(mod.Date, constant.BookingDateFormat)
	e.TotalAmount = mod.TotalAmount
}
