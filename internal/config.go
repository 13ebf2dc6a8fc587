package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
	_ "time/tzdata"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/harmoni/internal/api"
	"github.com/starford/harmoni/internal/backup"
	"github.com/starford/harmoni/internal/calendar"
	"github.com/starford/harmoni/internal/explore"
)

// Auth modes.
const (
	AuthModeDisabled = api.AuthDisabled
	AuthModeToken    = api.AuthToken
	AuthModeBasic    = api.AuthBasic
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	SQLite    SQLiteConfig      `yaml:"sqlite"`
	Directory DirectoryConfig   `yaml:"directory"`
	Calendar  CalendarConfig    `yaml:"calendar"`
	Backup    BackupConfig      `yaml:"backup"`
	Auth      AuthConfig        `yaml:"auth"`
	Metrics   MetricsConfig     `yaml:"metrics"`
	SSE       SSEConfig         `yaml:"sse"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Directory.Validate(); err != nil {
		return err
	}
	if err := c.Calendar.Validate(); err != nil {
		return err
	}
	if err := c.Backup.Validate(); err != nil {
		return err
	}
	if err := c.SSE.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
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

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
	// Seed inserts the built-in sites when the table is empty.
	Seed bool `yaml:"seed"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// DirectoryConfig controls the site list.
type DirectoryConfig struct {
	PageSize int `yaml:"page_size"`
}

// Validate validates the directory configuration.
func (c *DirectoryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PageSize, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

// CalendarConfig holds the calendar data directory and display settings.
type CalendarConfig struct {
	DataDir          string `yaml:"data_dir"`
	UpcomingPageSize int    `yaml:"upcoming_page_size"`
	// Timezone is the IANA zone "today" is computed in.
	Timezone string `yaml:"timezone"`
}

func validLocation(value any) error {
	name, _ := value.(string)
	if _, err := time.LoadLocation(name); err != nil {
		return errors.New("must be a valid IANA time zone")
	}
	return nil
}

// Validate validates the calendar configuration.
func (c *CalendarConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.UpcomingPageSize, validation.Required, validation.Min(1), validation.Max(50)),
		validation.Field(&c.Timezone, validation.Required, validation.By(validLocation)),
	)
}

// Location returns the configured time zone, or UTC when it cannot be loaded.
func (c *CalendarConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// BackupConfig controls database snapshots.
type BackupConfig struct {
	Dir     string `yaml:"dir"`
	Keep    int    `yaml:"keep"`
	OnStart bool   `yaml:"on_start"`
}

// Validate validates the backup configuration.
func (c *BackupConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Keep, validation.Required, validation.Min(1)),
	)
}

// AuthConfig holds admin authentication configuration.
//
// Mode controls how the admin routes are protected:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
//   - "basic": HTTP Basic authentication; Username and PasswordHash (argon2id,
//     see "harmoni hash-password") must be set.
type AuthConfig struct {
	Mode         string `yaml:"mode"`
	Token        string `yaml:"token"`
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled".
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken, AuthModeBasic)),
	); err != nil {
		return err
	}
	switch {
	case c.Mode == AuthModeToken && c.Token == "":
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	case c.Mode == AuthModeBasic && (c.Username == "" || c.PasswordHash == ""):
		return fmt.Errorf("auth: mode is %q but username or password_hash is empty", AuthModeBasic)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode != AuthModeDisabled
}

// API converts the section to the router's auth settings.
func (c *AuthConfig) API() api.AuthConfig {
	return api.AuthConfig{
		Mode:         c.Mode,
		Token:        c.Token,
		Username:     c.Username,
		PasswordHash: c.PasswordHash,
	}
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// SSEConfig holds event stream settings.
type SSEConfig struct {
	StatsThrottle time.Duration `yaml:"stats_throttle"`
}

// Validate validates the SSE configuration.
func (c *SSEConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.StatsThrottle, validation.Required, validation.Min(10*time.Millisecond)),
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
		SQLite: SQLiteConfig{
			Path: "./sites.db",
			Seed: true,
		},
		Directory: DirectoryConfig{
			PageSize: explore.DefaultPageSize,
		},
		Calendar: CalendarConfig{
			DataDir:          "./data/calendar",
			UpcomingPageSize: calendar.UpcomingPageSize,
			Timezone:         "Asia/Jakarta",
		},
		Backup: BackupConfig{
			Dir:     "./backups",
			Keep:    backup.DefaultKeep,
			OnStart: true,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		SSE: SSEConfig{
			StatsThrottle: 2 * time.Second,
		},
	}
}
