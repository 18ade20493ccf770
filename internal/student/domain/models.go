// Package domain contains the student roster and tuition balance models.
package domain

import "time"

// TuitionStatus tracks whether a student still owes tuition.
type TuitionStatus string

const (
	TuitionPartiel TuitionStatus = "Partiel"
	TuitionSolde   TuitionStatus = "Soldé"
)

// Student belongs to exactly one school. AmountDue is the remaining tuition
// in XOF minor units and never goes negative.
type Student struct {
	ID               string        `gorm:"primaryKey;type:text"`
	SchoolID         string        `gorm:"type:text;not null;index"`
	FirstName        string        `gorm:"type:text;not null"`
	LastName         string        `gorm:"type:text;not null"`
	CycleID          *int64        `gorm:"index"`
	TuitionFee       int64         `gorm:"not null;default:0"`
	DiscountAmount   int64         `gorm:"not null;default:0"`
	AmountDue        int64         `gorm:"not null;default:0"`
	TuitionStatus    TuitionStatus `gorm:"type:text;not null;default:'Partiel'"`
	StorageUsedBytes int64         `gorm:"not null;default:0"`
	CreatedAt        time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Student) TableName() string { return "students" }

// PaymentApplication is the outcome of applying a payment to a balance.
type PaymentApplication struct {
	Applied   int64
	Overpaid  int64
	AmountDue int64
	Status    TuitionStatus
}

// ApplyPayment clamps a payment to the outstanding balance. Overpayment is
// reported but never pushes the balance below zero.
func ApplyPayment(amountDue, payment int64) PaymentApplication {
	if payment < 0 {
		payment = 0
	}

	applied := payment
	if applied > amountDue {
		applied = amountDue
	}

	remaining := amountDue - applied
	status := TuitionPartiel
	if remaining == 0 {
		status = TuitionSolde
	}

	return PaymentApplication{
		Applied:   applied,
		Overpaid:  payment - applied,
		AmountDue: remaining,
		Status:    status,
	}
}
