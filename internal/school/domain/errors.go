package domain

import "errors"

var (
	ErrSchoolNotFound = errors.New("school_not_found")
	ErrUnknownPlan    = errors.New("unknown_plan")
	ErrInvalidMonths  = errors.New("invalid_duration_months")
)
