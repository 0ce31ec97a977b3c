package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/starford/folio/pkg/config"
)

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

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Content.Latency != 100*time.Millisecond {
		t.Errorf("latency = %v, want 100ms", cfg.Content.Latency)
	}
	if cfg.Pages.FeaturedCount != 3 {
		t.Errorf("featured = %d, want 3", cfg.Pages.FeaturedCount)
	}
	if cfg.Contact.ResetAfter != 3*time.Second {
		t.Errorf("reset_after = %v, want 3s", cfg.Contact.ResetAfter)
	}
}

func TestContentConfig_WatchNeedsPath(t *testing.T) {
	cfg := ContentConfig{Watch: true}
	if err := cfg.Validate(); err == nil {
		t.Fatal("watch without a path should fail")
	}
	cfg.Path = "./content"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("watch with a path should pass: %v", err)
	}
}

func TestContentConfig_NegativeLatency(t *testing.T) {
	cfg := ContentConfig{Latency: -time.Second}
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative latency should fail")
	}
}

func TestContactConfig_SMTPRequiresRelay(t *testing.T) {
	cfg := ContactConfig{Mode: ContactModeSMTP, To: "me@example.com"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("smtp mode without host should fail")
	}
	cfg.SMTP = SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "me", Password: "pw"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("complete smtp config should pass: %v", err)
	}
}

func TestContactConfig_EmptyModeDefaultsLog(t *testing.T) {
	cfg := ContactConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty contact config should pass: %v", err)
	}
	if cfg.Mode != ContactModeLog {
		t.Errorf("mode = %q, want %q", cfg.Mode, ContactModeLog)
	}
}

func TestContactConfig_BadRecipient(t *testing.T) {
	cfg := ContactConfig{Mode: ContactModeLog, To: "not-an-email"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid recipient should fail")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("FOLIO_TEST_TOKEN", "from-env")
	data := `
app:
  http:
    port: 9090
content:
  path: ./content
  latency: 250ms
  watch: true
auth:
  mode: token
  token: ${FOLIO_TEST_TOKEN}
pages:
  featured_count: 4
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.HTTP.Port != 9090 || cfg.Content.Latency != 250*time.Millisecond || !cfg.Content.Watch {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Auth.Token != "from-env" {
		t.Errorf("token = %q, want expanded env value", cfg.Auth.Token)
	}
	if cfg.Pages.FeaturedCount != 4 || cfg.SQLite.Path != "./folio.db" {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}
