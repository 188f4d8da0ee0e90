package api

import (
	"context"
	"encoding/json"
)

// ITRDeterminationRequest describes a user's income profile for form
// selection. Optional numeric fields are pointers so a real zero can
// be sent distinctly from an omitted value.
type ITRDeterminationRequest struct {
	IncomeSources        []string `json:"income_sources"`
	TotalIncome          *float64 `json:"total_income,omitempty"`
	IsDirector           bool     `json:"is_director"`
	HasForeignAssets     bool     `json:"has_foreign_assets"`
	HousePropertiesCount int      `json:"house_properties_count"`
	HasCapitalGains      bool     `json:"has_capital_gains"`
	IsBusiness           bool     `json:"is_business"`
	IsProfession         bool     `json:"is_profession"`
	BusinessTurnover     *float64 `json:"business_turnover,omitempty"`
	ProfessionalIncome   *float64 `json:"professional_income,omitempty"`
	UsePresumptive       bool     `json:"use_presumptive"`
}

// ITRDetermination is the backend's form recommendation.
type ITRDetermination struct {
	Form              string          `json:"itr_form"`
	Reasoning         string          `json:"reasoning"`
	FormDetails       json.RawMessage `json:"form_details,omitempty"`
	Confidence        string          `json:"confidence"`
	RequiredDocuments []string        `json:"required_documents"`
}

// ITRFormCatalog lists every ITR form variant the backend knows about.
type ITRFormCatalog struct {
	Forms json.RawMessage `json:"forms"`
}

// ITRValidationRequest asks whether a user-selected form fits their profile.
type ITRValidationRequest struct {
	SelectedITR      string   `json:"selected_itr"`
	IncomeSources    []string `json:"income_sources"`
	TotalIncome      *float64 `json:"total_income,omitempty"`
	IsDirector       bool     `json:"is_director"`
	HasForeignAssets bool     `json:"has_foreign_assets"`
	HasCapitalGains  bool     `json:"has_capital_gains"`
}

// ITRValidation is the backend's verdict on a selected form.
type ITRValidation struct {
	IsValid        bool   `json:"is_valid"`
	SelectedITR    string `json:"selected_itr"`
	RecommendedITR string `json:"recommended_itr"`
	Message        string `json:"message"`
}

// DetermineForm asks the backend which ITR form fits the profile.
func (c *Client) DetermineForm(ctx context.Context, req ITRDeterminationRequest) (*ITRDetermination, error) {
	var result ITRDetermination
	if err := c.postJSON(ctx, "/api/itr/determine", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAllForms fetches the ITR form catalog.
func (c *Client) GetAllForms(ctx context.Context) (*ITRFormCatalog, error) {
	var catalog ITRFormCatalog
	if err := c.getJSON(ctx, "/api/itr/forms", &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// ValidateSelection checks a user-selected ITR form against the profile.
func (c *Client) ValidateSelection(ctx context.Context, req ITRValidationRequest) (*ITRValidation, error) {
	var result ITRValidation
	if err := c.postJSON(ctx, "/api/itr/validate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
