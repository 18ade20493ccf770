// Package seed prepares the schema and optional demo data.
package seed

import (
	"time"

	idempotencydomain "github.com/kelasi/kelasi/internal/idempotency/domain"
	ledgerdomain "github.com/kelasi/kelasi/internal/ledger/domain"
	schooldomain "github.com/kelasi/kelasi/internal/school/domain"
	studentdomain "github.com/kelasi/kelasi/internal/student/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate derives the schema from the models, for dialects the
// embedded SQL migrations do not cover.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schooldomain.School{},
		&schooldomain.Cycle{},
		&studentdomain.Student{},
		&ledgerdomain.AccountingTransaction{},
		&ledgerdomain.PaymentRecord{},
		&idempotencydomain.ProcessedEvent{},
	)
}

// EnsureDemoSchool inserts a small demo tenant so a fresh install has
// something to point a webhook at. Existing rows are left untouched.
func EnsureDemoSchool(db *gorm.DB) error {
	endAt := time.Now().UTC().AddDate(0, 1, 0)
	startAt := time.Now().UTC()

	school := schooldomain.School{
		ID:   "demo",
		Name: "École Démo",
		Subscription: schooldomain.Subscription{
			Plan:    schooldomain.PlanEssentiel,
			Status:  schooldomain.SubscriptionStatusTrialing,
			StartAt: &startAt,
			EndAt:   &endAt,
		},
		ActiveModules:   datatypes.JSONSlice[string]{"cantine"},
		TotalTuitionDue: 150_000,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&school).Error; err != nil {
		return err
	}

	students := []studentdomain.Student{
		{
			ID:            "demo-stu-1",
			SchoolID:      "demo",
			FirstName:     "Awa",
			LastName:      "Diallo",
			TuitionFee:    100_000,
			AmountDue:     100_000,
			TuitionStatus: studentdomain.TuitionPartiel,
		},
		{
			ID:             "demo-stu-2",
			SchoolID:       "demo",
			FirstName:      "Moussa",
			LastName:       "Traoré",
			TuitionFee:     100_000,
			DiscountAmount: 50_000,
			AmountDue:      50_000,
			TuitionStatus:  studentdomain.TuitionPartiel,
		},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&students).Error
}
