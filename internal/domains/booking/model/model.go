package model

import (
	"time"

	"eventhub/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldServiceID   = "service_id"
	FieldDate        = "date"
	FieldStatus      = "status"
	FieldTotalAmount = "total_amount"
)

// Booking lifecycle states. New bookings are confirmed immediately since
// payment is validated before the row is written. Pending and Completed
// exist for reporting and manual workflows.
const (
	StatusConfirmed = "Confirmed"
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

type Booking struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	UserName     string    `db:"user_name"`
	UserEmail    string    `db:"user_email"`
	ServiceID    string    `db:"service_id"`
	ServiceTitle string    `db:"service_title"`
	Date         time.Time `db:"date"`
	GuestCount   int       `db:"guest_count"`
	TotalAmount  int64     `db:"total_amount"`
	Status       string    `db:"status"`
	model.Metadata
}
