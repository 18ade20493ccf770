// Package reconcile turns verified provider payment events into exactly-one
// business mutation: a subscription extension or a tuition ledger update.
package reconcile

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/kelasi/kelasi/internal/billing"
	"github.com/kelasi/kelasi/internal/clock"
	idempotencycache "github.com/kelasi/kelasi/internal/idempotency/cache"
	idempotencydomain "github.com/kelasi/kelasi/internal/idempotency/domain"
	"github.com/kelasi/kelasi/internal/observability/metrics"
	paymentdomain "github.com/kelasi/kelasi/internal/payment/domain"
	"github.com/kelasi/kelasi/internal/reference"
	schooldomain "github.com/kelasi/kelasi/internal/school/domain"
	studentdomain "github.com/kelasi/kelasi/internal/student/domain"
	"github.com/kelasi/kelasi/internal/usage"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine reconciles one payment event. It is safe to call with the same
// event any number of times.
type Engine interface {
	Reconcile(ctx context.Context, event *paymentdomain.PaymentEvent) error
}

type engine struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	cfg   Config

	idemRepo idempotencydomain.Repository
	seen     *idempotencycache.Cache

	schoolRepo schooldomain.Repository
	schoolSvc  schooldomain.Service
	studentSvc studentdomain.Service

	usage      usage.Provider
	calculator *billing.Calculator
	metrics    *metrics.Metrics
}

type EngineParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Cfg   Config

	IdemRepo idempotencydomain.Repository
	Seen     *idempotencycache.Cache `optional:"true"`

	SchoolRepo schooldomain.Repository
	SchoolSvc  schooldomain.Service
	StudentSvc studentdomain.Service

	Usage      usage.Provider
	Calculator *billing.Calculator
	Metrics    *metrics.Metrics `optional:"true"`
}

func NewEngine(p EngineParam) Engine {
	return &engine{
		db:         p.DB,
		log:        p.Log.Named("reconcile.engine"),
		genID:      p.GenID,
		clock:      p.Clock,
		cfg:        p.Cfg,
		idemRepo:   p.IdemRepo,
		seen:       p.Seen,
		schoolRepo: p.SchoolRepo,
		schoolSvc:  p.SchoolSvc,
		studentSvc: p.StudentSvc,
		usage:      p.Usage,
		calculator: p.Calculator,
		metrics:    p.Metrics,
	}
}

// Reconcile applies the event's business effect exactly once. Events that
// cannot be reconciled (unknown reference, missing school or student) are
// acknowledged with a nil error so providers stop redelivering them;
// transient failures return the underlying error so delivery is retried.
func (e *engine) Reconcile(ctx context.Context, event *paymentdomain.PaymentEvent) error {
	log := e.log.With(
		zap.String("provider", event.Provider),
		zap.String("provider_event_id", event.ProviderEventID),
		zap.String("reference", event.ReferenceID),
	)

	if event.Outcome != paymentdomain.OutcomeSuccess {
		log.Info("non-success payment event acknowledged", zap.String("outcome", string(event.Outcome)))
		e.metrics.RecordReconciliation(ctx, "", "skipped_"+string(event.Outcome))
		return nil
	}

	decoded, err := reference.Decode(event.ReferenceID, e.cfg.delimiterFor(event.Provider))
	if err != nil {
		// A reference we did not issue. Acknowledge so the provider stops
		// retrying; the raw payload stays in the provider dashboard.
		log.Error("payment reference decode failed", zap.Error(err))
		e.metrics.RecordReconciliation(ctx, "", "decode_failed")
		return nil
	}

	if e.seen.Seen(ctx, event.Provider, event.ProviderEventID) {
		return paymentdomain.ErrEventAlreadyProcessed
	}

	if err := e.checkAmount(ctx, log, decoded, event); err != nil {
		return err
	}

	var applied bool
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted, err := e.idemRepo.Insert(ctx, tx, &idempotencydomain.ProcessedEvent{
			ID:              e.genID.Generate(),
			Provider:        event.Provider,
			ProviderEventID: event.ProviderEventID,
			ReferenceID:     event.ReferenceID,
			Outcome:         string(event.Outcome),
			Payload:         event.RawPayload,
			ProcessedAt:     e.clock.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if !inserted {
			return paymentdomain.ErrEventAlreadyProcessed
		}

		switch decoded.PaymentType {
		case reference.TypeSubscription:
			return e.applySubscription(ctx, tx, decoded)
		case reference.TypeTuition:
			return e.applyTuition(ctx, tx, decoded, event)
		default:
			return &reference.DecodeError{Token: decoded.PaymentType, Reason: "unsupported payment type"}
		}
	})

	switch {
	case err == nil:
		applied = true
	case errors.Is(err, paymentdomain.ErrEventAlreadyProcessed):
		return err
	case errors.Is(err, schooldomain.ErrSchoolNotFound),
		errors.Is(err, studentdomain.ErrStudentNotFound),
		errors.Is(err, schooldomain.ErrUnknownPlan):
		// The reference points at something that no longer exists. The
		// transaction rolled back, so a later replay can still succeed.
		log.Error("payment event cannot be reconciled", zap.Error(err))
		e.metrics.RecordReconciliation(ctx, decoded.PaymentType, "unresolved")
		return nil
	default:
		return err
	}

	if applied {
		e.seen.MarkSeen(ctx, event.Provider, event.ProviderEventID)
		e.metrics.RecordReconciliation(ctx, decoded.PaymentType, "applied")
		// Counters only move once the transaction has committed; a rolled
		// back ledger write must not be counted.
		if decoded.PaymentType == reference.TypeTuition {
			e.metrics.RecordLedgerEntry(ctx, "tuition_payment")
		}
		log.Info("payment event reconciled",
			zap.String("payment_type", decoded.PaymentType),
			zap.Int64("amount_minor", event.AmountMinor),
		)
	}
	return nil
}

func (e *engine) applySubscription(ctx context.Context, tx *gorm.DB, decoded *reference.Decoded) error {
	plan, err := schooldomain.ParsePlan(decoded.PlanName)
	if err != nil {
		return err
	}
	_, err = e.schoolSvc.Extend(ctx, tx, decoded.SchoolID, plan, decoded.DurationMonths)
	return err
}

func (e *engine) applyTuition(ctx context.Context, tx *gorm.DB, decoded *reference.Decoded, event *paymentdomain.PaymentEvent) error {
	amount := event.AmountMinor
	if amount <= 0 {
		amount = decoded.AmountMinor
	}

	_, err := e.studentSvc.ApplyTuitionPayment(ctx, tx, studentdomain.TuitionPayment{
		SchoolID:    decoded.SchoolID,
		StudentID:   decoded.StudentID,
		AmountMinor: amount,
		Method:      event.Provider,
	})
	return err
}

// checkAmount compares what was paid with what the reference was issued
// for. Drift is logged and counted; it only blocks reconciliation when
// EnforceAmountMatch is on.
func (e *engine) checkAmount(ctx context.Context, log *zap.Logger, decoded *reference.Decoded, event *paymentdomain.PaymentEvent) error {
	if event.AmountMinor <= 0 {
		return nil
	}

	expected, ok := e.expectedAmount(ctx, decoded)
	if !ok {
		return nil
	}

	drift := event.AmountMinor - expected
	if drift < 0 {
		drift = -drift
	}
	if drift <= e.cfg.DriftToleranceMinor {
		return nil
	}

	e.metrics.RecordAmountMismatch(ctx, event.Provider, decoded.PaymentType)
	log.Warn("paid amount drifts from expected",
		zap.String("payment_type", decoded.PaymentType),
		zap.Int64("paid_minor", event.AmountMinor),
		zap.Int64("expected_minor", expected),
	)

	if e.cfg.EnforceAmountMatch {
		return ErrAmountMismatch
	}
	return nil
}

func (e *engine) expectedAmount(ctx context.Context, decoded *reference.Decoded) (int64, bool) {
	switch decoded.PaymentType {
	case reference.TypeTuition:
		if decoded.AmountMinor <= 0 {
			return 0, false
		}
		return decoded.AmountMinor, true
	case reference.TypeSubscription:
		school, err := e.schoolRepo.FindByID(ctx, e.db, decoded.SchoolID)
		if err != nil {
			return 0, false
		}
		current, err := e.usage.CurrentUsage(ctx, decoded.SchoolID)
		if err != nil {
			return 0, false
		}
		charge, err := e.calculator.ExpectedSubscriptionCharge(decoded.PlanName, current, school.ActiveModules, decoded.DurationMonths)
		if err != nil {
			return 0, false
		}
		return charge, true
	}
	return 0, false
}
