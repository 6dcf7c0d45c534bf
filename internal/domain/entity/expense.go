// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category represents an expense category label.
type Category string

// The fixed set of expense categories accepted at write time.
const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryUtilities      Category = "Utilities"
	CategoryShopping       Category = "Shopping"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryOther          Category = "Other"
)

// Categories returns all valid expense categories.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransportation,
		CategoryEntertainment,
		CategoryUtilities,
		CategoryShopping,
		CategoryHealthcare,
		CategoryEducation,
		CategoryOther,
	}
}

// IsValid reports whether the category is a member of the enumeration.
func (c Category) IsValid() bool {
	for _, valid := range Categories() {
		if c == valid {
			return true
		}
	}
	return false
}

// Expense represents a single recorded expense.
type Expense struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Category    Category
	Date        time.Time // calendar spending date, not a timestamp
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateExpenseData is the caller-supplied subset of an Expense.
type CreateExpenseData struct {
	Amount      decimal.Decimal
	Category    Category
	Date        time.Time
	Description string
}

// UpdateExpenseData is a partial patch of the mutable expense fields.
// Nil fields are left untouched by ApplyTo.
type UpdateExpenseData struct {
	Amount      *decimal.Decimal
	Category    *Category
	Date        *time.Time
	Description *string
}

// ApplyTo merges the patch into the expense. Patch fields always win;
// absent fields keep the stored value.
func (d UpdateExpenseData) ApplyTo(expense *Expense) {
	if d.Amount != nil {
		expense.Amount = *d.Amount
	}
	if d.Category != nil {
		expense.Category = *d.Category
	}
	if d.Date != nil {
		expense.Date = *d.Date
	}
	if d.Description != nil {
		expense.Description = *d.Description
	}
}
