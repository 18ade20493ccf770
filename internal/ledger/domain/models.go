// Package domain contains the school accounting ledger models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TypeRevenu  TransactionType = "Revenu"
	TypeDepense TransactionType = "Dépense"
)

const CategoryTuition = "Scolarité"

// AccountingTransaction is one line in a school's ledger. Amounts are in
// XOF minor units and always positive; the type carries the direction.
type AccountingTransaction struct {
	ID          snowflake.ID    `gorm:"primaryKey"`
	SchoolID    string          `gorm:"type:text;not null;index"`
	Type        TransactionType `gorm:"type:text;not null"`
	Category    string          `gorm:"type:text;not null"`
	Description string          `gorm:"type:text"`
	AmountMinor int64           `gorm:"not null"`
	Currency    string          `gorm:"type:text;not null;default:'XOF'"`
	OccurredAt  time.Time       `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AccountingTransaction) TableName() string { return "accounting_transactions" }

// PaymentRecord is the receipt issued for a tuition payment. It references
// the ledger entry written in the same transaction.
type PaymentRecord struct {
	ID                      snowflake.ID `gorm:"primaryKey"`
	SchoolID                string       `gorm:"type:text;not null;index"`
	StudentID               string       `gorm:"type:text;not null;index"`
	AccountingTransactionID snowflake.ID `gorm:"not null;index"`
	ReceiptNumber           string       `gorm:"type:text;not null;uniqueIndex"`
	Method                  string       `gorm:"type:text;not null"`
	AmountMinor             int64        `gorm:"not null"`
	Currency                string       `gorm:"type:text;not null;default:'XOF'"`
	PaidAt                  time.Time    `gorm:"not null"`
	CreatedAt               time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (PaymentRecord) TableName() string { return "payment_records" }
