package internal

import "time"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	now     func() time.Time
	version string
}

func newApplication(opts []Option) (*application, error) {
	app := &application{now: time.Now, version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, errConfigRequired
	}
	return app, nil
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithClock overrides the wall clock used for "today" and backup names.
func WithClock(now func() time.Time) Option {
	return func(a *application) {
		a.now = now
	}
}

// WithVersion sets the version reported by the MCP server.
func WithVersion(v string) Option {
	return func(a *application) {
		if v != "" {
			a.version = v
		}
	}
}
