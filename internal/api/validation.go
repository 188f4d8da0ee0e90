package api

import "context"

// TaxDataCheckRequest bundles self-declared figures with third-party
// statements for cross-checking.
type TaxDataCheckRequest struct {
	UserData     map[string]any `json:"user_data"`
	Form26ASData map[string]any `json:"form_26as_data,omitempty"`
	AISData      map[string]any `json:"ais_data,omitempty"`
}

// ValidationIssue is one detected discrepancy or omission. Amount
// fields are pointers: nil means the backend omitted the figure,
// a zero value is a real zero and still renders.
type ValidationIssue struct {
	Type             string   `json:"type"`
	Severity         string   `json:"severity"`
	Message          string   `json:"message"`
	AmountMissing    *float64 `json:"amount_missing,omitempty"`
	Difference       *float64 `json:"difference,omitempty"`
	Excess           *float64 `json:"excess,omitempty"`
	PotentialSavings *float64 `json:"potential_savings,omitempty"`
}

// TaxDataCheck is the categorized result of a full data check.
type TaxDataCheck struct {
	AllErrors         []ValidationIssue `json:"all_errors"`
	CriticalErrors    []ValidationIssue `json:"critical_errors"`
	Warnings          []ValidationIssue `json:"warnings"`
	Suggestions       []ValidationIssue `json:"suggestions"`
	TotalCount        int               `json:"total_count"`
	CriticalCount     int               `json:"critical_count"`
	HasCriticalErrors bool              `json:"has_critical_errors"`
	ValidationStatus  string            `json:"validation_status"`
}

// Form26ASRequest carries declared figures against Form 26AS figures.
type Form26ASRequest struct {
	DeclaredSalary float64 `json:"declared_salary"`
	DeclaredTDS    float64 `json:"declared_tds"`
	Form26ASSalary float64 `json:"form_26as_salary"`
	Form26ASTDS    float64 `json:"form_26as_tds"`
}

// Form26ASResult is the discrepancy verdict for a 26AS cross-check.
type Form26ASResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationIssue `json:"errors"`
	Message string            `json:"message"`
}

// CommonErrorCatalog lists frequent filing mistakes.
type CommonErrorCatalog struct {
	CommonErrors []ValidationIssue `json:"common_errors"`
}

// CheckTaxData validates user tax data against 26AS/AIS statements.
func (c *Client) CheckTaxData(ctx context.Context, req TaxDataCheckRequest) (*TaxDataCheck, error) {
	var result TaxDataCheck
	if err := c.postJSON(ctx, "/api/validation/check", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate26AS cross-checks declared salary and TDS against Form 26AS.
func (c *Client) Validate26AS(ctx context.Context, req Form26ASRequest) (*Form26ASResult, error) {
	var result Form26ASResult
	if err := c.postJSON(ctx, "/api/validation/form26as", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCommonErrors fetches the catalog of common filing errors.
func (c *Client) GetCommonErrors(ctx context.Context) (*CommonErrorCatalog, error) {
	var catalog CommonErrorCatalog
	if err := c.getJSON(ctx, "/api/validation/common-errors", &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}
