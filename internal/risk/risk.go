// Package risk scores reconciled transactions along three independent
// dimensions: data quality, contract compliance, and financial anomalies.
package risk

import (
	"github.com/shopspring/decimal"

	"github.com/procwatch-dev/procwatch/internal/clean"
	"github.com/procwatch-dev/procwatch/internal/model"
	"github.com/procwatch-dev/procwatch/internal/registry"
)

// Weights is the scoring policy. It is injected into the Scorer rather
// than read from package globals so policy stays testable and swappable.
type Weights struct {
	Failed          map[model.FieldKind]int `yaml:"failed"`
	Modified        map[model.FieldKind]int `yaml:"modified"`
	DefaultFailed   int                     `yaml:"default_failed"`
	DefaultModified int                     `yaml:"default_modified"`

	Expired          int `yaml:"expired"`
	ExpiringSoon     int `yaml:"expiring_soon"`
	ContractMismatch int `yaml:"contract_mismatch"`
	ExpiringSoonDays int `yaml:"expiring_soon_days"`

	HighAmount          int   `yaml:"high_amount"`
	LowAmount           int   `yaml:"low_amount"`
	HighAmountThreshold int64 `yaml:"high_amount_threshold"`
	LowAmountThreshold  int64 `yaml:"low_amount_threshold"`
}

// DefaultWeights returns the standard scoring policy. An unresolved field
// always costs more than a changed field of the same kind.
func DefaultWeights() Weights {
	return Weights{
		Failed: map[model.FieldKind]int{
			model.FieldProvider: 5,
			model.FieldAmount:   8,
			model.FieldDate:     3,
			model.FieldTitle:    5,
			model.FieldNumber:   5,
		},
		Modified: map[model.FieldKind]int{
			model.FieldProvider: 2,
			model.FieldAmount:   4,
			model.FieldDate:     1,
			model.FieldTitle:    2,
			model.FieldNumber:   2,
		},
		DefaultFailed:   5,
		DefaultModified: 2,

		Expired:          15,
		ExpiringSoon:     5,
		ContractMismatch: 10,
		ExpiringSoonDays: 90,

		HighAmount:          10,
		LowAmount:           7,
		HighAmountThreshold: 1_000_000,
		LowAmountThreshold:  100,
	}
}

// Scorer computes composite risk scores against a contract lookup.
type Scorer struct {
	weights Weights
	lookup  registry.Lookup
}

// NewScorer creates a Scorer with the given policy and contract lookup.
func NewScorer(weights Weights, lookup registry.Lookup) *Scorer {
	return &Scorer{weights: weights, lookup: lookup}
}

// Score fills the four risk fields on a record. Sub-scores are
// non-negative; the total is their sum with no upper bound.
func (s *Scorer) Score(rec *model.TransactionRecord) {
	rec.DataQualityRisk = s.dataQualityRisk(rec)
	rec.ContractRisk = s.contractRisk(rec)
	rec.FinancialRisk = s.financialRisk(rec)
	rec.RiskScore = rec.DataQualityRisk + rec.ContractRisk + rec.FinancialRisk
}

// ScoreAll scores every record in place.
func (s *Scorer) ScoreAll(recs []model.TransactionRecord) {
	for i := range recs {
		s.Score(&recs[i])
	}
}

func (s *Scorer) dataQualityRisk(rec *model.TransactionRecord) int {
	score := 0
	for _, f := range rec.FailedFields {
		if w, ok := s.weights.Failed[f]; ok {
			score += w
		} else {
			score += s.weights.DefaultFailed
		}
	}
	for _, f := range rec.ModifiedFields {
		if w, ok := s.weights.Modified[f]; ok {
			score += w
		} else {
			score += s.weights.DefaultModified
		}
	}
	return score
}

// contractRisk checks the (provider, title, number) triple against the
// registry. A miss is a flat mismatch penalty. On a hit, the invoice date
// is compared to the contract expiry; dates that fail to parse contribute
// nothing.
func (s *Scorer) contractRisk(rec *model.TransactionRecord) int {
	contract, ok := s.lookup[rec.Key()]
	if !ok {
		return s.weights.ContractMismatch
	}

	expiry, expOK := clean.ParseDate(contract.ExpiryDate)
	invDate, invOK := clean.ParseDate(rec.CleanDate)
	if !expOK || !invOK {
		return 0
	}

	if invDate.After(expiry) {
		return s.weights.Expired
	}
	soon := expiry.AddDate(0, 0, -s.weights.ExpiringSoonDays)
	if !invDate.Before(soon) {
		return s.weights.ExpiringSoon
	}
	return 0
}

func (s *Scorer) financialRisk(rec *model.TransactionRecord) int {
	if !rec.CleanAmount.Valid {
		return 0
	}
	amount := rec.CleanAmount.Decimal
	if amount.GreaterThan(decimal.NewFromInt(s.weights.HighAmountThreshold)) {
		return s.weights.HighAmount
	}
	if amount.LessThan(decimal.NewFromInt(s.weights.LowAmountThreshold)) {
		return s.weights.LowAmount
	}
	return 0
}
