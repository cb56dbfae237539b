package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
)

func TestGraphsResolve(t *testing.T) {
	assert.NoError(t, fx.ValidateApp(HTTP))
	assert.NoError(t, fx.ValidateApp(Worker))
}
