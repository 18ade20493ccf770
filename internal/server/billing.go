package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type quoteResponse struct {
	Plan        string `json:"plan"`
	BaseMinor   int64  `json:"base_minor"`
	Supplements struct {
		CyclesMinor   int64 `json:"cycles_minor"`
		StudentsMinor int64 `json:"students_minor"`
		StorageMinor  int64 `json:"storage_minor"`
		ModulesMinor  int64 `json:"modules_minor"`
	} `json:"supplements"`
	TotalMinor int64  `json:"total_minor"`
	Currency   string `json:"currency"`
}

// HandleBillingQuote prices the school's current plan against live usage.
func (s *Server) HandleBillingQuote(c *gin.Context) {
	schoolID := strings.TrimSpace(c.Param("school_id"))
	if schoolID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	school, err := s.schoolRepo.FindByID(ctx, s.db, schoolID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	current, err := s.usage.CurrentUsage(ctx, schoolID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	quote, err := s.calculator.Compute(string(school.Subscription.Plan), current, school.ActiveModules)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := quoteResponse{
		Plan:       quote.Plan,
		BaseMinor:  quote.BaseMinor,
		TotalMinor: quote.TotalMinor,
		Currency:   "XOF",
	}
	resp.Supplements.CyclesMinor = quote.Supplements.CyclesMinor
	resp.Supplements.StudentsMinor = quote.Supplements.StudentsMinor
	resp.Supplements.StorageMinor = quote.Supplements.StorageMinor
	resp.Supplements.ModulesMinor = quote.Supplements.ModulesMinor

	c.JSON(http.StatusOK, resp)
}

// HandleListLedger returns the school's ledger entries, newest first.
func (s *Server) HandleListLedger(c *gin.Context) {
	schoolID := strings.TrimSpace(c.Param("school_id"))
	if schoolID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	if _, err := s.schoolRepo.FindByID(ctx, s.db, schoolID); err != nil {
		AbortWithError(c, err)
		return
	}

	entries, err := s.ledgerRepo.ListTransactions(ctx, s.db, schoolID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
