package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("connection reset by peer")

func respondWith(t *testing.T, responder *ChainedResponder, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders/O-1", nil)
	responder.RespondError(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	responder := NewChainedResponder("",
		func(err error) (ProblemDetail, bool) { return ProblemDetail{}, false },
		func(err error) (ProblemDetail, bool) {
			return NewInsufficientStockProblem("P-2", 2, 3), errors.Is(err, errBoom)
		},
	)

	rec, body := respondWith(t, responder, errBoom)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, TypeInsufficientStock, body["type"])
	assert.Equal(t, "/orders/O-1", body["instance"])
	extensions := body["extensions"].(map[string]any)
	assert.Equal(t, "P-2", extensions["product_id"])
	assert.Equal(t, float64(2), extensions["available"])
	assert.Equal(t, float64(3), extensions["requested"])
}

func TestChainedResponder_UnmappedErrorHidesDetail(t *testing.T) {
	rec, body := respondWith(t, NewChainedResponder("https://errors.example.com"), errBoom)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "https://errors.example.com"+TypeInternal, body["type"])
	assert.NotContains(t, body["detail"], "connection reset")
}

func TestChainedResponder_PassesProblemDetailThrough(t *testing.T) {
	rec, body := respondWith(t, NewChainedResponder(""), ErrValidation.WithDetail("quantity must be positive"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "quantity must be positive", body["detail"])
}

func TestWithExtension_DoesNotMutateTemplate(t *testing.T) {
	_ = ErrConflict.Retryable()
	assert.Nil(t, ErrConflict.Extensions)
}

func TestNewNotFoundProblem(t *testing.T) {
	single := NewNotFoundProblem("order", "O-404")
	assert.Equal(t, "O-404", single.Extensions["identifier"])
	assert.Contains(t, single.Detail, "O-404")

	many := NewNotFoundProblem("product", "P-8", "P-9")
	assert.Equal(t, []string{"P-8", "P-9"}, many.Extensions["identifiers"])
	assert.Equal(t, http.StatusNotFound, many.Status)
}
