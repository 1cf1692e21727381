package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
ocr:
  app_id: "11111"
  app_key: "ak"
  secret_key: "sk"
question:
  x: 20
  y: 220
  width: 680
  height: 220
choices:
  x: 60
  y: 480
  width: 600
  height: 440
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OCR.AppKey != "ak" || cfg.OCR.SecretKey != "sk" {
		t.Errorf("credentials not loaded: %+v", cfg.OCR)
	}
	if cfg.Question.Width != 680 || cfg.Choices.Y != 480 {
		t.Errorf("regions not loaded: question=%+v choices=%+v", cfg.Question, cfg.Choices)
	}
	if cfg.Search.Pages != 2 || cfg.Search.Fetcher != "http" {
		t.Errorf("search defaults missing: %+v", cfg.Search)
	}
	if cfg.Keywords.TopN != 4 {
		t.Errorf("keywords.top_n default = %d, want 4", cfg.Keywords.TopN)
	}
	if cfg.Capture.Backend != "adb" {
		t.Errorf("capture.backend default = %q, want adb", cfg.Capture.Backend)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML+`
search:
  pages: 1
  fetcher: browser
  use_raw_question: true
  timeout_seconds: 30
capture:
  backend: display
  display: 1
keywords:
  top_n: 6
hotkey: Ctrl+Alt+Q
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Search.Pages != 1 || cfg.Search.Fetcher != "browser" || !cfg.Search.UseRawQuestion {
		t.Errorf("search overrides not applied: %+v", cfg.Search)
	}
	if got := cfg.Search.Timeout().Seconds(); got != 30 {
		t.Errorf("timeout = %vs, want 30s", got)
	}
	if cfg.Capture.Backend != "display" || cfg.Capture.Display != 1 {
		t.Errorf("capture overrides not applied: %+v", cfg.Capture)
	}
	if cfg.Keywords.TopN != 6 || cfg.Hotkey != "Ctrl+Alt+Q" {
		t.Errorf("overrides not applied: topN=%d hotkey=%q", cfg.Keywords.TopN, cfg.Hotkey)
	}
}

func TestLoadEnvOverridesCredentials(t *testing.T) {
	t.Setenv("OCR_APP_KEY", "env-ak")
	t.Setenv("OCR_SECRET_KEY", "env-sk")

	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OCR.AppKey != "env-ak" || cfg.OCR.SecretKey != "env-sk" {
		t.Errorf("env override not applied: %+v", cfg.OCR)
	}
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	_, err := Load(writeConfig(t, `
question: {x: 0, y: 0, width: 10, height: 10}
choices: {x: 0, y: 10, width: 10, height: 10}
`))
	if err == nil {
		t.Error("expected error for missing credentials")
	}
}

func TestLoadRejectsBadRegion(t *testing.T) {
	_, err := Load(writeConfig(t, `
ocr: {app_key: "ak", secret_key: "sk"}
question: {x: -5, y: 0, width: 10, height: 10}
choices: {x: 0, y: 10, width: 10, height: 10}
`))
	if err == nil {
		t.Error("expected error for negative region origin")
	}
}

func TestLoadRejectsUnknownFetcher(t *testing.T) {
	_, err := Load(writeConfig(t, validYAML+`
search:
  fetcher: carrier-pigeon
`))
	if err == nil {
		t.Error("expected error for unknown fetcher")
	}
}
