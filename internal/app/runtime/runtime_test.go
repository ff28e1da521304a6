package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFailsWithoutConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", "does-not-exist.yaml")

	app, err := New(context.Background())
	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestShutdownWithNilResources(t *testing.T) {
	app := &App{}

	assert.NotPanics(t, func() {
		app.Shutdown(context.Background())
	})
}
