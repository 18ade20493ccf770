package domain

import (
	"context"

	ledgerdomain "github.com/kelasi/kelasi/internal/ledger/domain"
	"gorm.io/gorm"
)

// TuitionPayment is a confirmed provider payment to post against a student.
type TuitionPayment struct {
	SchoolID    string
	StudentID   string
	AmountMinor int64
	Method      string
	Description string
}

// Service posts tuition payments inside a caller-owned transaction.
type Service interface {
	// ApplyTuitionPayment updates the student balance, writes the ledger
	// entry and receipt, and adjusts the school's outstanding total.
	ApplyTuitionPayment(ctx context.Context, tx *gorm.DB, payment TuitionPayment) (*ledgerdomain.PaymentRecord, error)
}
