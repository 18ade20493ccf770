package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kelasi/kelasi/internal/clock"
	ledgerrepo "github.com/kelasi/kelasi/internal/ledger/repository"
	schooldomain "github.com/kelasi/kelasi/internal/school/domain"
	schoolrepo "github.com/kelasi/kelasi/internal/school/repository"
	"github.com/kelasi/kelasi/internal/seed"
	studentdomain "github.com/kelasi/kelasi/internal/student/domain"
	studentrepo "github.com/kelasi/kelasi/internal/student/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (studentdomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, seed.AutoMigrate(db))

	genID, err := snowflake.NewNode(2)
	require.NoError(t, err)

	svc := NewService(ServiceParam{
		Log:        zap.NewNop(),
		GenID:      genID,
		Clock:      clock.NewFakeClock(time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)),
		Repo:       studentrepo.Provide(),
		LedgerRepo: ledgerrepo.Provide(),
		SchoolRepo: schoolrepo.Provide(),
	})
	return svc, db
}

func seedSchoolWithStudent(t *testing.T, db *gorm.DB, amountDue int64) {
	t.Helper()
	require.NoError(t, db.Create(&schooldomain.School{
		ID:   "sch1",
		Name: "École sch1",
		Subscription: schooldomain.Subscription{
			Plan:   schooldomain.PlanPro,
			Status: schooldomain.SubscriptionStatusActive,
		},
		TotalTuitionDue: amountDue,
	}).Error)
	require.NoError(t, db.Create(&studentdomain.Student{
		ID:            "stu1",
		SchoolID:      "sch1",
		FirstName:     "Awa",
		LastName:      "Diallo",
		TuitionFee:    amountDue,
		AmountDue:     amountDue,
		TuitionStatus: studentdomain.TuitionPartiel,
	}).Error)
}

func TestApplyTuitionPaymentDecrementsSchoolRollup(t *testing.T) {
	svc, db := newTestService(t)
	seedSchoolWithStudent(t, db, 10_000)

	record, err := svc.ApplyTuitionPayment(context.Background(), db, studentdomain.TuitionPayment{
		SchoolID:    "sch1",
		StudentID:   "stu1",
		AmountMinor: 4_000,
		Method:      "especes",
	})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.EqualValues(t, 4_000, record.AmountMinor)

	var school schooldomain.School
	require.NoError(t, db.First(&school, "id = ?", "sch1").Error)
	assert.EqualValues(t, 6_000, school.TotalTuitionDue)
}

func TestApplyTuitionPaymentOverpaymentClampsRollup(t *testing.T) {
	svc, db := newTestService(t)
	seedSchoolWithStudent(t, db, 10_000)

	// Paying more than the balance settles the student and must only move
	// the school rollup by the outstanding 10000, keeping it equal to the
	// sum of student balances.
	_, err := svc.ApplyTuitionPayment(context.Background(), db, studentdomain.TuitionPayment{
		SchoolID:    "sch1",
		StudentID:   "stu1",
		AmountMinor: 12_000,
		Method:      "especes",
	})
	require.NoError(t, err)

	var student studentdomain.Student
	require.NoError(t, db.First(&student, "id = ?", "stu1").Error)
	assert.EqualValues(t, 0, student.AmountDue)
	assert.Equal(t, studentdomain.TuitionSolde, student.TuitionStatus)

	var school schooldomain.School
	require.NoError(t, db.First(&school, "id = ?", "sch1").Error)
	assert.EqualValues(t, 0, school.TotalTuitionDue)
}

func TestApplyTuitionPaymentRejectsNonPositiveAmount(t *testing.T) {
	svc, db := newTestService(t)
	seedSchoolWithStudent(t, db, 10_000)

	_, err := svc.ApplyTuitionPayment(context.Background(), db, studentdomain.TuitionPayment{
		SchoolID:    "sch1",
		StudentID:   "stu1",
		AmountMinor: 0,
		Method:      "especes",
	})
	assert.ErrorIs(t, err, studentdomain.ErrInvalidPayment)
}
