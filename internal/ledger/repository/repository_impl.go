package repository

import (
	"context"

	ledgerdomain "github.com/kelasi/kelasi/internal/ledger/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() ledgerdomain.Repository {
	return &repo{}
}

func (r *repo) InsertTransaction(ctx context.Context, db *gorm.DB, entry *ledgerdomain.AccountingTransaction) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) InsertPaymentRecord(ctx context.Context, db *gorm.DB, record *ledgerdomain.PaymentRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) ListTransactions(ctx context.Context, db *gorm.DB, schoolID string) ([]ledgerdomain.AccountingTransaction, error) {
	var entries []ledgerdomain.AccountingTransaction
	err := db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("occurred_at DESC").
		Find(&entries).Error
	return entries, err
}
