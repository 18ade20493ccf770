package domain

import "errors"

var (
	ErrStudentNotFound = errors.New("student_not_found")
	ErrInvalidPayment  = errors.New("invalid_payment_amount")
)
