// config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup. It is built once in main
// and handed to the components that need it.
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Mongo  MongoConfig
	Auth   AuthConfig
	CORS   CORSConfig
	S3     S3Config
	Mail   MailConfig
	Sentry SentryConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env      string // development, staging, production
	LogLevel string
}

// HTTPConfig listener settings.
type HTTPConfig struct {
	Port string
}

// Addr returns the listen address.
func (c HTTPConfig) Addr() string {
	return ":" + c.Port
}

// MongoConfig connection settings for the document database.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

// AuthConfig session and signup settings.
type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	AdminSecret  string
	CookieSecure bool
}

// CORSConfig frontend origins allowed to call the API with credentials.
type CORSConfig struct {
	AllowedOrigins []string
}

// S3Config object storage for profile pictures. An empty bucket stores pictures inline.
type S3Config struct {
	Bucket string
	Prefix string
}

// MailConfig notification mail settings.
type MailConfig struct {
	Provider      string // sendgrid, postmark or none
	SendGridKey   string
	PostmarkToken string
	From          string
	NotifyTo      string
}

// SentryConfig error reporting. Empty DSN disables reporting.
type SentryConfig struct {
	DSN string
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// Load reads configuration from the environment, after loading a .env file if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Proceeding with environment variables.")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	env := v.GetString("APP_ENV")
	cfg := &Config{
		App: AppConfig{
			Env:      env,
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Port: v.GetString("PORT"),
		},
		Mongo: MongoConfig{
			URI:            v.GetString("MONGODB_URI"),
			Database:       v.GetString("MONGODB_DATABASE"),
			ConnectTimeout: v.GetDuration("MONGODB_CONNECT_TIMEOUT"),
			SocketTimeout:  v.GetDuration("MONGODB_SOCKET_TIMEOUT"),
		},
		Auth: AuthConfig{
			JWTSecret:    v.GetString("JWT_SECRET"),
			TokenTTL:     v.GetDuration("JWT_TTL"),
			AdminSecret:  v.GetString("ADMIN_SECRET"),
			CookieSecure: env != "development",
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		S3: S3Config{
			Bucket: v.GetString("S3_BUCKET"),
			Prefix: v.GetString("S3_PREFIX"),
		},
		Mail: MailConfig{
			Provider:      strings.ToLower(v.GetString("MAIL_PROVIDER")),
			SendGridKey:   v.GetString("SENDGRID_API_KEY"),
			PostmarkToken: v.GetString("POSTMARK_SERVER_TOKEN"),
			From:          v.GetString("MAIL_FROM"),
			NotifyTo:      v.GetString("MAIL_NOTIFY_TO"),
		},
		Sentry: SentryConfig{
			DSN: v.GetString("SENTRY_DSN"),
		},
	}
	if v.IsSet("COOKIE_SECURE") {
		cfg.Auth.CookieSecure = v.GetBool("COOKIE_SECURE")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8000")
	v.SetDefault("MONGODB_DATABASE", "showcase")
	v.SetDefault("MONGODB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("MONGODB_SOCKET_TIMEOUT", "45s")
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("S3_PREFIX", "profile-pictures")
	v.SetDefault("MAIL_PROVIDER", "none")
}

// Validate checks required settings and value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Mongo.URI == "" {
		errs = append(errs, errors.New("MONGODB_URI is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive, got %s", c.Auth.TokenTTL))
	}
	switch c.Mail.Provider {
	case "", "none":
	case "sendgrid":
		if c.Mail.SendGridKey == "" {
			errs = append(errs, errors.New("SENDGRID_API_KEY is required for MAIL_PROVIDER=sendgrid"))
		}
	case "postmark":
		if c.Mail.PostmarkToken == "" {
			errs = append(errs, errors.New("POSTMARK_SERVER_TOKEN is required for MAIL_PROVIDER=postmark"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
