// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package config_test

import (
	"context"
	"testing"

	"codeberg.org/lesgardiens/boardclub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func loadConfig(t *testing.T, args ...string) *config.Config {
	t.Helper()
	var cfg *config.Config
	cmd := &cli.Command{
		Name:  "test",
		Flags: config.Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg = config.NewFromCLI(cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	require.NotNil(t, cfg)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := loadConfig(t)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:5000", cfg.Server.BaseURL)
	assert.Equal(t, "https://lesgardiensoflegende.surge.sh", cfg.Server.CORSOrigin)
	assert.Equal(t, "./data/boardclub.db", cfg.Database.DSN)
	assert.Equal(t, 3, cfg.Auth.TokenTTL)
	assert.Equal(t, 24, cfg.Auth.VerificationTTL)
	assert.True(t, cfg.Auth.RequireVerifiedEmail)
	assert.Equal(t, "_session", cfg.Session.CookieName)
	assert.Equal(t, 18000, cfg.Session.MaxAge)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.TLS)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("LOG_FORMAT", "json")

	cfg := loadConfig(t)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
}

func TestValidate(t *testing.T) {
	cfg := loadConfig(t)
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "secret"
	assert.Error(t, cfg.Validate())

	cfg.Session.HashKey = "6368616e676520746869732070617373776f726420746f206120736563726574"
	assert.NoError(t, cfg.Validate())
}
