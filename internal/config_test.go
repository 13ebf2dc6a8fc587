package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/starford/harmoni/pkg/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if cfg.Directory.PageSize != 8 || cfg.Calendar.UpcomingPageSize != 5 || cfg.Backup.Keep != 10 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Calendar.Location().String() != "Asia/Jakarta" {
		t.Errorf("location = %s", cfg.Calendar.Location())
	}
}

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
	if a := cfg.API(); a.Mode != "token" || a.Token != "mysecret" {
		t.Errorf("api config = %+v", a)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_BasicModeNeedsCredentials(t *testing.T) {
	cfg := AuthConfig{Mode: "basic", Username: "admin"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("basic mode without password hash should fail")
	}
	cfg.PasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$a2V5"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("basic mode with credentials should pass: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestCalendarConfig_BadTimezone(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Calendar.Timezone = "Mars/Olympus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown time zone should fail")
	}
}

func TestSSEConfig_ThrottleTooSmall(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SSE.StatsThrottle = time.Millisecond
	if err := cfg.Validate(); err == nil {
		t.Fatal("1ms throttle should fail")
	}
}

func TestLoadYAMLWithEnv(t *testing.T) {
	t.Setenv("HARMONI_TEST_TOKEN", "from-env")
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  log_level: debug
  http:
    port: 9090
directory:
  page_size: 12
auth:
  mode: token
  token: ${HARMONI_TEST_TOKEN}
sse:
  stats_throttle: 500ms
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.HTTP.Port != 9090 || cfg.Directory.PageSize != 12 {
		t.Errorf("yaml not applied: %+v", cfg)
	}
	if cfg.Auth.Token != "from-env" {
		t.Errorf("token = %q, want from-env", cfg.Auth.Token)
	}
	if cfg.SSE.StatsThrottle != 500*time.Millisecond {
		t.Errorf("throttle = %s", cfg.SSE.StatsThrottle)
	}
	if cfg.Calendar.Timezone != "Asia/Jakarta" {
		t.Errorf("defaults lost: timezone = %q", cfg.Calendar.Timezone)
	}
}
