package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"quiz-helper/crop"
)

// OCR holds the recognition provider credentials.
type OCR struct {
	AppID     string `yaml:"app_id"`
	AppKey    string `yaml:"app_key"`
	SecretKey string `yaml:"secret_key"`
}

// Search selects the page fetch strategy and corpus size.
type Search struct {
	BaseURL string `yaml:"base_url"`
	Pages   int    `yaml:"pages"`
	// Fetcher is "http" or "browser".
	Fetcher string `yaml:"fetcher"`
	// UseRawQuestion sends the full question text instead of reduced
	// keywords, the historical query policy.
	UseRawQuestion bool `yaml:"use_raw_question"`
	TimeoutSec     int  `yaml:"timeout_seconds"`
}

func (s Search) Timeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// Capture selects the screen source.
type Capture struct {
	// Backend is "adb" or "display".
	Backend   string `yaml:"backend"`
	ADBSerial string `yaml:"adb_serial"`
	Display   int    `yaml:"display"`
}

type Keywords struct {
	TopN int `yaml:"top_n"`
}

// Config is loaded once at startup and read-only afterwards.
type Config struct {
	OCR      OCR         `yaml:"ocr"`
	Question crop.Region `yaml:"question"`
	Choices  crop.Region `yaml:"choices"`
	Search   Search      `yaml:"search"`
	Capture  Capture     `yaml:"capture"`
	Keywords Keywords    `yaml:"keywords"`

	// Hotkey optionally triggers a run globally, e.g. "Ctrl+Alt+Q".
	Hotkey            string `yaml:"hotkey"`
	EnableFileLogging bool   `yaml:"enable_file_logging"`
}

// Load reads the YAML config file and applies environment overrides for
// the OCR credentials.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %v", err)
	}

	cfg := &Config{
		Search:   Search{Pages: 2, Fetcher: "http", TimeoutSec: 20},
		Capture:  Capture{Backend: "adb"},
		Keywords: Keywords{TopN: 4},
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets credentials come from the environment or a .env file next
// to the working directory or the executable, overriding the config file.
func applyEnv(cfg *Config) {
	envPaths := []string{".env"}
	if execPath, err := os.Executable(); err == nil {
		envPaths = append(envPaths, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			godotenv.Load(envPath)
			break
		}
	}

	if v := os.Getenv("OCR_APP_ID"); v != "" {
		cfg.OCR.AppID = v
	}
	if v := os.Getenv("OCR_APP_KEY"); v != "" {
		cfg.OCR.AppKey = v
	}
	if v := os.Getenv("OCR_SECRET_KEY"); v != "" {
		cfg.OCR.SecretKey = v
	}
}

func (c *Config) validate() error {
	if c.OCR.AppKey == "" || c.OCR.SecretKey == "" {
		return fmt.Errorf("ocr credentials are required (config file or OCR_APP_KEY/OCR_SECRET_KEY)")
	}
	if err := validRegion("question", c.Question); err != nil {
		return err
	}
	if err := validRegion("choices", c.Choices); err != nil {
		return err
	}
	switch c.Search.Fetcher {
	case "http", "browser":
	default:
		return fmt.Errorf("search.fetcher must be \"http\" or \"browser\", got %q", c.Search.Fetcher)
	}
	switch c.Capture.Backend {
	case "adb", "display":
	default:
		return fmt.Errorf("capture.backend must be \"adb\" or \"display\", got %q", c.Capture.Backend)
	}
	return nil
}

// validRegion checks what can be checked without the live image; the full
// bounds check happens against each capture.
func validRegion(name string, r crop.Region) error {
	if r.X < 0 || r.Y < 0 || r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%s region must have non-negative origin and positive size, got %+v", name, r)
	}
	return nil
}
