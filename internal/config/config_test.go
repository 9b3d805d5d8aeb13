package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Brownie44l1/agricare-api/internal/labels"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range append(keys, "agricare_config") {
		env := strings.ToUpper(k)
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	// Keep godotenv from picking up a developer's .env.
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %s", cfg.Port)
	}
	if cfg.ImageSize != 224 {
		t.Fatalf("expected image size 224, got %d", cfg.ImageSize)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.LLMTimeout)
	}
	if cfg.GeminiAPIKey != "" {
		t.Fatal("missing credential must load as empty")
	}

	m, err := cfg.LabelMap()
	if err != nil || m.Len() != 15 {
		t.Fatalf("expected default label map, got %v (err %v)", m, err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("LLM_TIMEOUT", "5s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.GeminiAPIKey != "secret" || cfg.LLMTimeout != 5*time.Second {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if key, _ := cfg.LLMCredentials(); key != "secret" {
		t.Fatalf("expected gemini credential, got %q", key)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "agricare.yaml")
	content := `
port: "7000"
llm_provider: openai
openai_api_key: sk-test
labels:
  - label: Corn_rust
    index: 0
  - label: Corn_healthy
    index: 1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7000" {
		t.Fatalf("expected port 7000, got %s", cfg.Port)
	}
	if key, _ := cfg.LLMCredentials(); key != "sk-test" {
		t.Fatalf("expected openai credential, got %q", key)
	}

	m, err := cfg.LabelMap()
	if err != nil {
		t.Fatalf("unexpected label error: %v", err)
	}
	if label, _ := m.Label(1); label != "Corn_healthy" {
		t.Fatalf("unexpected label %q", label)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadRejectsBadImageSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMAGE_SIZE", "0")
	if _, err := Load(""); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLabelMapInvalid(t *testing.T) {
	tests := map[string][]labels.Entry{
		"duplicate index": {{Label: "a", Index: 0}, {Label: "b", Index: 0}},
		"duplicate label": {{Label: "a", Index: 0}, {Label: "a", Index: 1}},
	}
	for name, entries := range tests {
		cfg := &Config{Labels: entries}
		if _, err := cfg.LabelMap(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestOutputClasses(t *testing.T) {
	sparse := []labels.Entry{{Label: "A", Index: 0}, {Label: "B", Index: 5}}
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"default table", Config{}, 15},
		{"sparse table", Config{Labels: sparse}, 6},
		{"explicit width", Config{Labels: sparse, NumClasses: 15}, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.cfg.LabelMap()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tt.cfg.OutputClasses(m); got != tt.want {
				t.Fatalf("OutputClasses = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadNumClassesFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("NUM_CLASSES", "38")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputClasses(labels.Default()) != 38 {
		t.Fatalf("expected 38 output classes, got %d", cfg.NumClasses)
	}

	t.Setenv("NUM_CLASSES", "-1")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for negative num_classes")
	}
}
