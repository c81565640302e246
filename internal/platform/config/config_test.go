package config

import (
	"testing"
	"time"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseViper() *viper.Viper {
	v := viper.New()
	v.Set("PORT", "9090")
	v.Set("JWT_SECRET", "secret")
	v.Set("JWT_EXPIRY_DURATION", "30m")
	v.Set("DUES_AMOUNT", "80.00")
	v.Set("DUES_DUE_DAY", 10)
	v.Set("DUES_STATUS_POLICY", "grace_period")
	v.Set("CLUB_TIMEZONE", "UTC")
	return v
}

func TestFromViper(t *testing.T) {
	cfg, err := fromViper(baseViper())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.True(t, decimal.RequireFromString("80").Equal(cfg.DuesAmount))
	assert.Equal(t, domain.PolicyGracePeriod, cfg.DuesStatusPolicy)
	assert.Equal(t, 10, cfg.DuesCalendar().DueDay)
	assert.Equal(t, time.UTC, cfg.ClubLocation)
}

func TestFromViper_InvalidExpiryFallsBack(t *testing.T) {
	v := baseViper()
	v.Set("JWT_EXPIRY_DURATION", "soon")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
}

func TestFromViper_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"unknown policy", "DUES_STATUS_POLICY", "lenient"},
		{"bad amount", "DUES_AMOUNT", "eighty"},
		{"negative amount", "DUES_AMOUNT", "-1"},
		{"due day out of range", "DUES_DUE_DAY", 32},
		{"unknown timezone", "CLUB_TIMEZONE", "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := baseViper()
			v.Set(tt.key, tt.value)
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestFromViper_ProductionRequiresSecret(t *testing.T) {
	v := baseViper()
	v.Set("JWT_SECRET", "")
	v.Set("IS_PRODUCTION", true)

	_, err := fromViper(v)
	assert.Error(t, err)

	v.Set("IS_PRODUCTION", false)
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.JWTSecret)
}
