package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineForm(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/itr/determine", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"itr_form":           "ITR-1",
			"reasoning":          "Salary income up to ₹50 lakh with no business income qualifies for ITR-1 (Sahaj).",
			"confidence":         "high",
			"required_documents": []string{"Form 16", "Form 26AS"},
		})
	})

	income := 1200000.0
	result, err := client.DetermineForm(context.Background(), ITRDeterminationRequest{
		IncomeSources: []string{"salary"},
		TotalIncome:   &income,
	})
	require.NoError(t, err)

	assert.Equal(t, "ITR-1", result.Form)
	assert.NotEmpty(t, result.Reasoning)
	assert.Equal(t, "high", result.Confidence)
	assert.Contains(t, result.RequiredDocuments, "Form 16")

	assert.Equal(t, float64(1200000), got["total_income"])
	assert.Equal(t, []any{"salary"}, got["income_sources"])
}

func TestDetermineFormOmitsUnsetOptionals(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"itr_form": "ITR-1"})
	})

	_, err := client.DetermineForm(context.Background(), ITRDeterminationRequest{
		IncomeSources: []string{"salary"},
	})
	require.NoError(t, err)

	_, present := got["total_income"]
	assert.False(t, present, "unset total_income must be omitted, not sent as 0")
	_, present = got["business_turnover"]
	assert.False(t, present)
}

func TestDetermineFormSendsExplicitZero(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"itr_form": "ITR-1"})
	})

	zero := 0.0
	_, err := client.DetermineForm(context.Background(), ITRDeterminationRequest{
		IncomeSources: []string{"salary"},
		TotalIncome:   &zero,
	})
	require.NoError(t, err)

	v, present := got["total_income"]
	require.True(t, present, "an explicit zero must be sent")
	assert.Equal(t, float64(0), v)
}

func TestValidateSelection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/itr/validate", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"is_valid":        false,
			"selected_itr":    "ITR-1",
			"recommended_itr": "ITR-2",
			"message":         "Capital gains income requires ITR-2.",
		})
	})

	result, err := client.ValidateSelection(context.Background(), ITRValidationRequest{
		SelectedITR:     "ITR-1",
		IncomeSources:   []string{"salary", "capital_gains"},
		HasCapitalGains: true,
	})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, "ITR-2", result.RecommendedITR)
}

func TestGetAllForms(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/itr/forms", r.URL.Path)
		w.Write([]byte(`{"forms":{"ITR-1":{"name":"Sahaj"},"ITR-2":{"name":"ITR-2"}}}`))
	})

	catalog, err := client.GetAllForms(context.Background())
	require.NoError(t, err)

	var forms map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(catalog.Forms, &forms))
	assert.Contains(t, forms, "ITR-1")
}
