package middleware

import (
	"testing"
	"time"

	"teamlink/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestBuildCORSConfigWildcardDisablesCredentials(t *testing.T) {
	cfg := buildCORSConfig(&config.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowCredentials: true,
		MaxAge:           12,
	})

	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)
	assert.Empty(t, cfg.AllowOrigins)
}

func TestBuildCORSConfigExplicitOrigins(t *testing.T) {
	cfg := buildCORSConfig(&config.CORSConfig{
		AllowOrigins:     []string{"https://app.example.com"},
		AllowMethods:     []string{"GET"},
		AllowCredentials: true,
		MaxAge:           1,
	})

	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, time.Hour, cfg.MaxAge)
}
