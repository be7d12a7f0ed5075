package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemDetails_MarshalFlattensExtensions(t *testing.T) {
	pd := NewProblemDetails(http.StatusNotFound, TypeDataNotFound, "Data Not Found", "missing", "/api/dashboard").
		WithExtension("trace_id", "abc")

	raw, err := json.Marshal(pd)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "abc", got["trace_id"])
	assert.Equal(t, float64(404), got["status"])
	assert.Equal(t, TypeDataNotFound, got["type"])
}

func TestProblemDetails_ExtensionsCannotOverrideCoreFields(t *testing.T) {
	pd := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed", "", "").
		WithExtension("status", 200)

	raw, err := json.Marshal(pd)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, float64(400), got["status"])
	assert.NotContains(t, got, "detail")
}
