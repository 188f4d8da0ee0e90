package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTaxData(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/validation/check", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"all_errors": []map[string]any{
				{"type": "income_mismatch", "severity": "critical", "message": "Salary differs from Form 26AS", "difference": 50000},
				{"type": "missing_interest", "severity": "warning", "message": "Interest income not declared", "amount_missing": 0},
			},
			"critical_errors":     []map[string]any{{"type": "income_mismatch", "severity": "critical", "message": "Salary differs from Form 26AS"}},
			"warnings":            []map[string]any{{"type": "missing_interest", "severity": "warning", "message": "Interest income not declared"}},
			"suggestions":         []any{},
			"total_count":         2,
			"critical_count":      1,
			"has_critical_errors": true,
			"validation_status":   "failed",
		})
	})

	result, err := client.CheckTaxData(context.Background(), TaxDataCheckRequest{
		UserData:     map[string]any{"salary": 1200000},
		Form26ASData: map[string]any{"salary": 1250000},
	})
	require.NoError(t, err)

	assert.Equal(t, "failed", result.ValidationStatus)
	assert.True(t, result.HasCriticalErrors)
	require.Len(t, result.AllErrors, 2)

	require.NotNil(t, result.AllErrors[0].Difference)
	assert.Equal(t, float64(50000), *result.AllErrors[0].Difference)
	assert.Nil(t, result.AllErrors[0].AmountMissing)

	// A zero figure from the backend is real data, not an omission.
	require.NotNil(t, result.AllErrors[1].AmountMissing)
	assert.Equal(t, float64(0), *result.AllErrors[1].AmountMissing)
	assert.Nil(t, result.AllErrors[1].Difference)

	_, present := got["ais_data"]
	assert.False(t, present, "unset AIS data must be omitted")
}

func TestValidate26AS(t *testing.T) {
	var got Form26ASRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/validation/form26as", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"is_valid": false,
			"message":  "Discrepancies found against Form 26AS",
			"errors": []map[string]any{
				{"type": "salary_mismatch", "severity": "critical", "message": "Declared salary below Form 26AS", "difference": 50000},
			},
		})
	})

	result, err := client.Validate26AS(context.Background(), Form26ASRequest{
		DeclaredSalary: 1200000,
		DeclaredTDS:    95000,
		Form26ASSalary: 1250000,
		Form26ASTDS:    100000,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(1250000), got.Form26ASSalary)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "salary_mismatch", result.Errors[0].Type)
}

func TestGetCommonErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/validation/common-errors", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"common_errors": []map[string]any{
				{"type": "unreported_interest", "severity": "warning", "message": "Savings interest often goes unreported"},
			},
		})
	})

	catalog, err := client.GetCommonErrors(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog.CommonErrors, 1)
	assert.Equal(t, "unreported_interest", catalog.CommonErrors[0].Type)
}
