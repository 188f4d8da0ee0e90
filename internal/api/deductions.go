package api

import (
	"context"
	"encoding/json"
)

// DeductionSuggestionRequest describes the profile used to pick
// applicable deduction sections.
type DeductionSuggestionRequest struct {
	IncomeSources      []string `json:"income_sources"`
	Age                *int     `json:"age,omitempty"`
	HasHomeLoan        bool     `json:"has_home_loan"`
	HasEducationLoan   bool     `json:"has_education_loan"`
	HasHealthInsurance bool     `json:"has_health_insurance"`
	IsSalaried         bool     `json:"is_salaried"`
	TaxRegime          string   `json:"tax_regime,omitempty"`
}

// Deduction is one suggested statutory deduction.
type Deduction struct {
	Section           string          `json:"section"`
	MaxLimit          *float64        `json:"max_limit,omitempty"`
	Amount            *float64        `json:"amount,omitempty"`
	Description       string          `json:"description"`
	Details           json.RawMessage `json:"details,omitempty"`
	RequiredDocuments []string        `json:"required_documents,omitempty"`
	Applicable        *bool           `json:"applicable,omitempty"`
}

// DeductionSuggestions is the suggestion list plus the summed ceiling.
type DeductionSuggestions struct {
	Deductions              []Deduction `json:"deductions"`
	TotalPotentialDeduction float64     `json:"total_potential_deduction"`
	TaxRegime               string      `json:"tax_regime"`
	Count                   int         `json:"count"`
	Note                    string      `json:"note"`
}

// DeductionSectionCatalog lists all statutory deduction sections.
type DeductionSectionCatalog struct {
	Sections json.RawMessage `json:"sections"`
	Note     string          `json:"note"`
}

// TaxCalculationRequest carries the figures for a slab computation.
type TaxCalculationRequest struct {
	TotalIncome float64            `json:"total_income"`
	Deductions  map[string]float64 `json:"deductions"`
	TaxRegime   string             `json:"tax_regime,omitempty"`
	Age         *int               `json:"age,omitempty"`
}

// TaxCalculation is the backend's slab-by-slab result.
type TaxCalculation struct {
	TotalIncome      float64 `json:"total_income"`
	TotalDeductions  float64 `json:"total_deductions"`
	TaxableIncome    float64 `json:"taxable_income"`
	TaxBeforeRebate  float64 `json:"tax_before_rebate"`
	Rebate87A        float64 `json:"rebate_87a"`
	FinalTax         float64 `json:"final_tax"`
	EffectiveTaxRate float64 `json:"effective_tax_rate"`
	Regime           string  `json:"regime"`
}

// GetSuggestions fetches applicable deductions for the profile.
func (c *Client) GetSuggestions(ctx context.Context, req DeductionSuggestionRequest) (*DeductionSuggestions, error) {
	var result DeductionSuggestions
	if err := c.postJSON(ctx, "/api/deductions/suggest", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAllSections fetches the deduction section catalog.
func (c *Client) GetAllSections(ctx context.Context) (*DeductionSectionCatalog, error) {
	var catalog DeductionSectionCatalog
	if err := c.getJSON(ctx, "/api/deductions/sections", &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// CalculateTax computes tax for the given income and deductions.
func (c *Client) CalculateTax(ctx context.Context, req TaxCalculationRequest) (*TaxCalculation, error) {
	var result TaxCalculation
	if err := c.postJSON(ctx, "/api/deductions/calculate-tax", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
