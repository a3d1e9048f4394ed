package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "python", cfg.Language)
	assert.Equal(t, "HarClient", cfg.ClientName)
	assert.True(t, cfg.Annotate)
	assert.False(t, cfg.ValidateHAR)
	assert.Equal(t, 30*time.Second, cfg.LoadTimeout)
	assert.Equal(t, 512, cfg.BodyCacheMaxItems)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HARGEN_LANGUAGE", "go")
	t.Setenv("HARGEN_ANNOTATE", "off")
	t.Setenv("HARGEN_LOAD_TIMEOUT_MS", "5000")
	t.Setenv("HARGEN_BODY_CACHE_MAX_ITEMS", "64")

	cfg := Load()
	assert.Equal(t, "go", cfg.Language)
	assert.False(t, cfg.Annotate)
	assert.Equal(t, 5*time.Second, cfg.LoadTimeout)
	assert.Equal(t, 64, cfg.BodyCacheMaxItems)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("HARGEN_BODY_CACHE_MAX_ITEMS", "not-a-number")
	t.Setenv("HARGEN_ANNOTATE", "maybe")

	cfg := Load()
	assert.Equal(t, 512, cfg.BodyCacheMaxItems)
	assert.True(t, cfg.Annotate)
}
