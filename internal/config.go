package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/pages"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Contact delivery modes.
const (
	ContactModeLog  = "log"
	ContactModeSMTP = "smtp"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	Contact ContactConfig     `yaml:"contact"`
	Pages   PagesConfig       `yaml:"pages"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Contact.Validate(); err != nil {
		return err
	}
	return c.Pages.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig says where the collections come from.
//
// An empty Path serves the content bundled into the binary. Watch only
// applies to an on-disk Path.
type ContentConfig struct {
	Path    string        `yaml:"path"`
	Latency time.Duration `yaml:"latency"`
	Watch   bool          `yaml:"watch"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Latency, validation.Min(time.Duration(0)), validation.Max(10*time.Second)),
		validation.Field(&c.Watch, validation.When(c.Path == "", validation.Empty.Error("requires content.path"))),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration for the admin routes.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// ContactConfig holds contact form delivery settings.
type ContactConfig struct {
	Mode          string        `yaml:"mode"`
	To            string        `yaml:"to"`
	From          string        `yaml:"from"`
	SubjectPrefix string        `yaml:"subject_prefix"`
	ResetAfter    time.Duration `yaml:"reset_after"`
	SMTP          SMTPConfig    `yaml:"smtp"`
}

// Validate validates the contact configuration.
func (c *ContactConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = ContactModeLog
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.In(ContactModeLog, ContactModeSMTP)),
		validation.Field(&c.To, validation.When(c.Mode == ContactModeSMTP, validation.Required), is.EmailFormat),
		validation.Field(&c.From, is.EmailFormat),
		validation.Field(&c.ResetAfter, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("contact: %w", err)
	}
	if c.Mode == ContactModeSMTP {
		if err := c.SMTP.Validate(); err != nil {
			return fmt.Errorf("contact: smtp: %w", err)
		}
	}
	return nil
}

// SMTPConfig holds the SMTP relay used in smtp mode.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Validate validates the SMTP configuration.
func (c *SMTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Host, validation.Required, is.Host),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Password, validation.When(c.Username != "", validation.Required)),
	)
}

// PagesConfig tunes the page view models.
type PagesConfig struct {
	FeaturedCount int `yaml:"featured_count"`
}

// Validate validates the pages configuration.
func (c *PagesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.FeaturedCount, validation.Min(0), validation.Max(50)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Latency: content.DefaultLatency,
		},
		SQLite: SQLiteConfig{
			Path: "./folio.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Contact: ContactConfig{
			Mode:          ContactModeLog,
			SubjectPrefix: "Portfolio Contact",
			ResetAfter:    3 * time.Second,
			SMTP: SMTPConfig{
				Port: 587,
			},
		},
		Pages: PagesConfig{
			FeaturedCount: pages.DefaultFeaturedCount,
		},
	}
}
