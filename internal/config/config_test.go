package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_ADDR", "SERPAPI_NUM", "SMTP_PORT", "SMTP_HOST", "ALERT_EMAIL", "SERPAPI_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerAddr != ":3000" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, ":3000")
	}
	if cfg.SerpNum != 100 {
		t.Errorf("SerpNum = %d, want 100", cfg.SerpNum)
	}
	if cfg.SMTPHost != "smtp.gmail.com" || cfg.SMTPPort != 465 {
		t.Errorf("SMTP = %s:%d, want smtp.gmail.com:465", cfg.SMTPHost, cfg.SMTPPort)
	}
	if cfg.SerpTimeout != 30*time.Second {
		t.Errorf("SerpTimeout = %v, want 30s", cfg.SerpTimeout)
	}
	if cfg.AlertEmails != nil {
		t.Errorf("AlertEmails = %v, want nil", cfg.AlertEmails)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERPAPI_NUM", "50")
	t.Setenv("SERPAPI_TIMEOUT", "5s")
	t.Setenv("SERPAPI_RATE", "2.5")
	t.Setenv("ALERT_EMAIL", "a@example.com, b@example.com,,")

	cfg := Load()

	if cfg.SerpNum != 50 {
		t.Errorf("SerpNum = %d, want 50", cfg.SerpNum)
	}
	if cfg.SerpTimeout != 5*time.Second {
		t.Errorf("SerpTimeout = %v, want 5s", cfg.SerpTimeout)
	}
	if cfg.SerpRatePerSec != 2.5 {
		t.Errorf("SerpRatePerSec = %v, want 2.5", cfg.SerpRatePerSec)
	}
	want := []string{"a@example.com", "b@example.com"}
	if !reflect.DeepEqual(cfg.AlertEmails, want) {
		t.Errorf("AlertEmails = %v, want %v", cfg.AlertEmails, want)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SERPAPI_NUM", "lots")
	t.Setenv("SERPAPI_RATE", "-1")
	t.Setenv("SERPAPI_TIMEOUT", "soon")

	cfg := Load()

	if cfg.SerpNum != 100 {
		t.Errorf("SerpNum = %d, want 100", cfg.SerpNum)
	}
	if cfg.SerpRatePerSec != 1 {
		t.Errorf("SerpRatePerSec = %v, want 1", cfg.SerpRatePerSec)
	}
	if cfg.SerpTimeout != 30*time.Second {
		t.Errorf("SerpTimeout = %v, want 30s", cfg.SerpTimeout)
	}
}

func TestConfig_IsEmailEnabled(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected bool
	}{
		{
			name:     "fully configured",
			cfg:      Config{SMTPHost: "smtp.example.com", SMTPPort: 465, EmailSender: "me@example.com", AlertEmails: []string{"ops@example.com"}},
			expected: true,
		},
		{
			name:     "no recipients",
			cfg:      Config{SMTPHost: "smtp.example.com", SMTPPort: 465, EmailSender: "me@example.com"},
			expected: false,
		},
		{
			name:     "no sender",
			cfg:      Config{SMTPHost: "smtp.example.com", SMTPPort: 465, AlertEmails: []string{"ops@example.com"}},
			expected: false,
		},
		{
			name:     "no host",
			cfg:      Config{SMTPPort: 465, EmailSender: "me@example.com", AlertEmails: []string{"ops@example.com"}},
			expected: false,
		},
		{
			name:     "empty config",
			cfg:      Config{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsEmailEnabled(); got != tt.expected {
				t.Errorf("IsEmailEnabled() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLoadYAMLConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
tracking:
  interval: 2h
  projects:
    - domain: example.com
      keywords:
        - seo tools
        - rank tracker
    - domain: example.org
      keywords: [golang]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadYAMLConfigFile(path)
	if err != nil {
		t.Fatalf("LoadYAMLConfigFile() error = %v", err)
	}

	if cfg.Tracking.Interval != 2*time.Hour {
		t.Errorf("Interval = %v, want 2h", cfg.Tracking.Interval)
	}
	if !cfg.HasProjects() || len(cfg.Tracking.Projects) != 2 {
		t.Fatalf("Projects = %v, want 2 projects", cfg.Tracking.Projects)
	}

	p := cfg.GetProjectByDomain("example.com")
	if p == nil {
		t.Fatal("GetProjectByDomain(example.com) = nil")
	}
	if !reflect.DeepEqual(p.Keywords, []string{"seo tools", "rank tracker"}) {
		t.Errorf("Keywords = %v", p.Keywords)
	}
	if cfg.GetProjectByDomain("missing.com") != nil {
		t.Error("GetProjectByDomain(missing.com) should be nil")
	}
}

func TestLoadYAMLConfigFile_DefaultInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tracking:\n  projects:\n    - domain: example.com\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadYAMLConfigFile(path)
	if err != nil {
		t.Fatalf("LoadYAMLConfigFile() error = %v", err)
	}
	if cfg.Tracking.Interval != DefaultTrackingInterval {
		t.Errorf("Interval = %v, want %v", cfg.Tracking.Interval, DefaultTrackingInterval)
	}
}

func TestLoadYAMLConfigFile_Missing(t *testing.T) {
	cfg, err := LoadYAMLConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadYAMLConfigFile() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("LoadYAMLConfigFile() = %v, want nil", cfg)
	}
	if cfg.HasProjects() {
		t.Error("nil config should have no projects")
	}
}

func TestLoadYAMLConfigFile_MissingDomain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tracking:\n  projects:\n    - keywords: [a]\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := LoadYAMLConfigFile(path); err == nil {
		t.Error("LoadYAMLConfigFile() expected error for project without domain")
	}
}
