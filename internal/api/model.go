package api

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// CompareRequest is the body of POST /api/v1/compare. A missing input means
// the default (empty) state.
type CompareRequest struct {
	Input      json.RawMessage `json:"input"`
	Templates  []string        `json:"templates"`
	Transforms []string        `json:"transforms"`
}

// BreakevenRequest is the body of POST /api/v1/breakeven. Empty fields
// take the solver defaults: investment target, FY2025-26, the savings
// certificate line.
type BreakevenRequest struct {
	Input          json.RawMessage  `json:"input"`
	Target         string           `json:"target"`
	Goal           string           `json:"goal"`
	FiscalYear     string           `json:"fiscalYear"`
	InvestmentLine string           `json:"investmentLine"`
	MinAmount      *decimal.Decimal `json:"minAmount"`
	MaxAmount      *decimal.Decimal `json:"maxAmount"`
	TargetPayable  *decimal.Decimal `json:"targetPayable"`
	All            bool             `json:"all"` // every target for every fiscal year
}

// SlabsResponse is the body of GET /api/v1/slabs
type SlabsResponse struct {
	FiscalYear domain.FiscalYear   `json:"fiscalYear"`
	Category   domain.Category     `json:"category"`
	Threshold  decimal.Decimal     `json:"threshold"`
	Slabs      []domain.TaxBracket `json:"slabs"`
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status      string              `json:"status"`
	Version     string              `json:"version"`
	FiscalYears []domain.FiscalYear `json:"fiscalYears"`
}
