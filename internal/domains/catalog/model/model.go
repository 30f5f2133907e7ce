package model

import (
	"eventhub/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "service_packages"
	EntityName = "service_package"

	FieldID    = "id"
	FieldType  = "type"
	FieldTitle = "title"
	FieldPrice = "price"
	FieldImage = "image"
)

// Service types offered by the agency.
const (
	TypeWedding      = "Wedding Decoration"
	TypeBirthday     = "Birthday Decoration"
	TypeCorporate    = "Corporate Party"
	TypeCatering     = "Catering Service"
	TypeHouseWarming = "House Warming"
	TypePhotoVideo   = "Photography & Videography"
	TypeCustom       = "Custom AI Plan"
)

// Budget tiers a customer can pick when materializing a planner suggestion.
const (
	BudgetLow    = "Low"
	BudgetMedium = "Medium"
	BudgetHigh   = "High"
)

// Flat prices for materialized custom plans, keyed by budget tier.
const (
	customPriceLow    int64 = 15000
	customPriceMedium int64 = 25000
	customPriceHigh   int64 = 80000
)

// CustomPrice returns the flat price of a custom plan for the given budget
// tier. Unknown tiers fall back to the medium price.
func CustomPrice(budget string) int64 {
	switch budget {
	case BudgetLow:
		return customPriceLow
	case BudgetHigh:
		return customPriceHigh
	default:
		return customPriceMedium
	}
}

type ServicePackage struct {
	ID          string         `db:"id"`
	Type        string         `db:"type"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Price       int64          `db:"price"`
	Image       string         `db:"image"`
	Features    pq.StringArray `db:"features"`
	model.Metadata
}

// PerGuest reports whether the package is priced per guest rather than as a
// flat amount. Catering is quoted per plate.
func (s ServicePackage) PerGuest() bool {
	return s.Type == TypeCatering
}

// Quote returns the total price of the package for the given guest count.
func (s ServicePackage) Quote(guestCount int) int64 {
	if s.PerGuest() {
		return s.Price * int64(guestCount)
	}

	return s.Price
}
