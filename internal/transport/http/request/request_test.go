package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/padoca/pkg/errorbank"
)

func TestPathID(t *testing.T) {
	e := echo.New()
	for raw, ok := range map[string]bool{"7": true, "0": false, "-3": false, "abc": false} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)

		id, err := PathID(c, "id")
		if ok {
			require.NoError(t, err, raw)
			assert.EqualValues(t, 7, id)
		} else {
			assert.True(t, errorbank.Is(err, errorbank.KindBadRequest), raw)
		}
	}
}

func TestBindRejectsMalformedJSON(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var payload struct {
		Name string `json:"name"`
	}
	err := Bind(c, &payload)
	assert.True(t, errorbank.Is(err, errorbank.KindBadRequest))
}
