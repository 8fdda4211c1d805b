package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, ":8000", cfg.HTTP.Addr())
	assert.Equal(t, "showcase", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, 45*time.Second, cfg.Mongo.SocketTimeout)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.CookieSecure, "development cookies are not Secure")
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "none", cfg.Mail.Provider)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_SECRET", "open-sesame")
	t.Setenv("CORS_ORIGINS", "https://shop.example, https://admin.example ,")
	t.Setenv("JWT_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr())
	assert.Equal(t, "open-sesame", cfg.Auth.AdminSecret)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_MailProvider(t *testing.T) {
	cfg := &Config{
		Mongo: MongoConfig{URI: "mongodb://x"},
		Auth:  AuthConfig{JWTSecret: "s", TokenTTL: time.Hour},
		Mail:  MailConfig{Provider: "sendgrid"},
	}
	assert.ErrorContains(t, cfg.Validate(), "SENDGRID_API_KEY")

	cfg.Mail = MailConfig{Provider: "pigeon"}
	assert.ErrorContains(t, cfg.Validate(), "unknown MAIL_PROVIDER")

	cfg.Mail = MailConfig{Provider: "postmark", PostmarkToken: "tok"}
	assert.NoError(t, cfg.Validate())
}
