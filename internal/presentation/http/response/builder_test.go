package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/padoca/pkg/errorbank"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBuildMessage(t *testing.T) {
	c, rec := newContext()

	err := New(c).
		WithStatus(http.StatusCreated).
		WithMessage("Order created successfully").
		WithField("order_id", 12).
		Build()
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Order created successfully","order_id":12}`, rec.Body.String())
}

func TestBuildData(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, New(c).WithData([]string{}).Build())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestBuildError(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, New(c).WithError(errorbank.Conflict("Email already exists")).Build())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email already exists","kind":"conflict"}`, rec.Body.String())
}

func TestBuildUnexpectedError(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, New(c).WithError(errors.New("database is locked")).Build())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error","kind":"internal"}`, rec.Body.String())
}
