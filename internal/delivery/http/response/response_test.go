package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "campusmart/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestSuccess_CarriesRequestID(t *testing.T) {
	c, rec := newTestContext(t)
	deliverycontext.SetRequestID(c, "req-42")

	err := Success(c, http.StatusOK, map[string]string{"id": "p-1"}, "")
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, http.StatusOK, envelope.Code)
	assert.Equal(t, "Success", envelope.Message)
	assert.Equal(t, "req-42", envelope.RequestID)
	assert.Nil(t, envelope.Error)
}

func TestError_CarriesBusinessCode(t *testing.T) {
	c, rec := newTestContext(t)

	err := Error(c, http.StatusConflict, "STALE_CART", "", "price changed")
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, http.StatusConflict, envelope.Code)
	assert.Equal(t, http.StatusText(http.StatusConflict), envelope.Message)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "STALE_CART", envelope.Error.Code)
	assert.Equal(t, "price changed", envelope.Error.Details)
	assert.Empty(t, envelope.RequestID, "no middleware ran, so no request ID")
}
