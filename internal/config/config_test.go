package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "")

	cfg, err := Load("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.APIPrefix)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenExpiration)
	assert.Equal(t, 2*time.Hour, cfg.Auth.GuestExpiration)
	assert.Equal(t, 5*time.Minute, cfg.Cache.SettingsTTL)
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			MongoDB:   MongoDBConfig{URI: "mongodb://localhost:27017", DBName: "slc"},
			Auth:      AuthConfig{JWTSecret: "s", TokenExpiration: time.Hour, GuestExpiration: time.Hour},
			Scheduler: SchedulerConfig{FollowUpSchedule: "0 7 * * *", Timezone: "UTC"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: true},
		{name: "zero expiry", mutate: func(c *Config) { c.Auth.TokenExpiration = 0 }, wantErr: true},
		{name: "half whatsapp", mutate: func(c *Config) { c.WhatsApp.AccessToken = "tok" }, wantErr: true},
		{name: "full whatsapp", mutate: func(c *Config) {
			c.WhatsApp = WhatsAppConfig{AccessToken: "tok", PhoneNumberID: "123", BaseURL: "https://graph.facebook.com", APIVersion: "v20.0"}
		}},
		{name: "half sheets", mutate: func(c *Config) { c.Sheets.SpreadsheetID = "sheet" }, wantErr: true},
		{name: "bad timezone", mutate: func(c *Config) { c.Scheduler.Timezone = "Mars/Olympus" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
