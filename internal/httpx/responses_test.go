package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccess_IncludesRequestIDInMeta(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-123"))
	w := httptest.NewRecorder()

	JSONSuccess(w, r, map[string]string{"hello": "world"}, map[string]interface{}{"total": 3})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	meta, ok := body["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "req-123", meta["request_id"])
	assert.Equal(t, float64(3), meta["total"])
}

func TestJSONSuccess_OmitsMetaWhenEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	w := httptest.NewRecorder()

	JSONSuccess(w, r, "data", nil)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	_, hasMeta := body["meta"]
	assert.False(t, hasMeta)
}

func TestJSONError_Shape(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/v1/reviews", nil)
	w := httptest.NewRecorder()

	JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", []ErrorDetail{
		{Field: "book_title", Message: "unknown title"},
	})

	require.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Book not found", body.Error.Message)
	require.Len(t, body.Error.Details, 1)
	assert.Equal(t, "book_title", body.Error.Details[0].Field)
}

func TestJSONSuccessNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	JSONSuccessNoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
