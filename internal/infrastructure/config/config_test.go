package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "token-key")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	missingDB := cfg
	missingDB.DB.Password = ""
	assert.ErrorContains(t, missingDB.Validate(), "DB_PASSWORD")

	missingJWT := cfg
	missingJWT.JWT.Secret = ""
	assert.ErrorContains(t, missingJWT.Validate(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "credit-service", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.HTTPAddr())
	assert.Equal(t, "2", cfg.GuarantorRemunerationPct.String())
	assert.Equal(t, "0 2 * * *", cfg.OverdueSweepSpec)
}
