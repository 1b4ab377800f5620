package respond

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]string{"key": "value"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, rec.Body.String())
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, errors.New("text is required"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"text is required"}`, rec.Body.String())
}

func TestSafeErrorPassesValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusBadRequest, errors.New("question cannot be empty"))

	assert.JSONEq(t, `{"error":"question cannot be empty"}`, rec.Body.String())
}

func TestSafeErrorMasksInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusInternalServerError, errors.New("dial tcp 10.0.0.5: connection refused"))

	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestSafeErrorMasksAll5xx(t *testing.T) {
	// Even a "safe-looking" message is masked at 5xx.
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusInternalServerError, errors.New("value is invalid"))

	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "openai key",
			in:   "auth failed for sk-abcdefghijklmnop1234",
			want: "auth failed for sk-****",
		},
		{
			name: "anthropic key",
			in:   "auth failed for sk-ant-api03-abc_def-123",
			want: "auth failed for sk-ant-****",
		},
		{
			name: "no secrets",
			in:   "plain failure",
			want: "plain failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(errors.New(tt.in)))
		})
	}
}
