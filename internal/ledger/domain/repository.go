package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertTransaction(ctx context.Context, db *gorm.DB, entry *AccountingTransaction) error
	InsertPaymentRecord(ctx context.Context, db *gorm.DB, record *PaymentRecord) error
	ListTransactions(ctx context.Context, db *gorm.DB, schoolID string) ([]AccountingTransaction, error)
}
