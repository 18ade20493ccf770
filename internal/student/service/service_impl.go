package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/kelasi/kelasi/internal/clock"
	ledgerdomain "github.com/kelasi/kelasi/internal/ledger/domain"
	schooldomain "github.com/kelasi/kelasi/internal/school/domain"
	studentdomain "github.com/kelasi/kelasi/internal/student/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo       studentdomain.Repository
	ledgerRepo ledgerdomain.Repository
	schoolRepo schooldomain.Repository
}

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock

	Repo       studentdomain.Repository
	LedgerRepo ledgerdomain.Repository
	SchoolRepo schooldomain.Repository
}

func NewService(p ServiceParam) studentdomain.Service {
	return &Service{
		log:        p.Log.Named("student.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		ledgerRepo: p.LedgerRepo,
		schoolRepo: p.SchoolRepo,
	}
}

// ApplyTuitionPayment implements domain.Service. All four writes (student
// balance, ledger entry, receipt, school total) share the caller's
// transaction.
func (s *Service) ApplyTuitionPayment(ctx context.Context, tx *gorm.DB, payment studentdomain.TuitionPayment) (*ledgerdomain.PaymentRecord, error) {
	if payment.AmountMinor <= 0 {
		return nil, studentdomain.ErrInvalidPayment
	}

	student, err := s.repo.FindByIDForUpdate(ctx, tx, payment.SchoolID, payment.StudentID)
	if err != nil {
		return nil, err
	}

	applied := studentdomain.ApplyPayment(student.AmountDue, payment.AmountMinor)
	if applied.Overpaid > 0 {
		s.log.Warn("tuition payment exceeds balance",
			zap.String("school_id", payment.SchoolID),
			zap.String("student_id", payment.StudentID),
			zap.Int64("overpaid_minor", applied.Overpaid),
		)
	}

	if err := s.repo.UpdateTuition(ctx, tx, payment.SchoolID, student.ID, applied.AmountDue, applied.Status); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	description := payment.Description
	if description == "" {
		description = "Paiement scolarité " + student.LastName + " " + student.FirstName
	}

	entry := &ledgerdomain.AccountingTransaction{
		ID:          s.genID.Generate(),
		SchoolID:    payment.SchoolID,
		Type:        ledgerdomain.TypeRevenu,
		Category:    ledgerdomain.CategoryTuition,
		Description: description,
		AmountMinor: payment.AmountMinor,
		Currency:    "XOF",
		OccurredAt:  now,
	}
	if err := s.ledgerRepo.InsertTransaction(ctx, tx, entry); err != nil {
		return nil, err
	}

	record := &ledgerdomain.PaymentRecord{
		ID:                      s.genID.Generate(),
		SchoolID:                payment.SchoolID,
		StudentID:               student.ID,
		AccountingTransactionID: entry.ID,
		ReceiptNumber:           ulid.Make().String(),
		Method:                  payment.Method,
		AmountMinor:             payment.AmountMinor,
		Currency:                "XOF",
		PaidAt:                  now,
	}
	if err := s.ledgerRepo.InsertPaymentRecord(ctx, tx, record); err != nil {
		return nil, err
	}

	if applied.Applied > 0 {
		if err := s.schoolRepo.AdjustTotalTuitionDue(ctx, tx, payment.SchoolID, -applied.Applied); err != nil {
			return nil, err
		}
	}

	s.log.Info("tuition payment applied",
		zap.String("school_id", payment.SchoolID),
		zap.String("student_id", student.ID),
		zap.Int64("amount_minor", payment.AmountMinor),
		zap.Int64("remaining_minor", applied.AmountDue),
		zap.String("receipt", record.ReceiptNumber),
	)

	return record, nil
}
