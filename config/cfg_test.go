package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	validator "github.com/go-playground/validator/v10"
	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Units.BaseFontSize != 16 {
		t.Errorf("BaseFontSize = %g, want 16", cfg.Units.BaseFontSize)
	}
	if cfg.Units.ViewportWidth != 1920 || cfg.Units.ViewportHeight != 1080 {
		t.Errorf("Viewport = %gx%g, want 1920x1080", cfg.Units.ViewportWidth, cfg.Units.ViewportHeight)
	}
	if cfg.Units.Precision != 4 {
		t.Errorf("Precision = %d, want 4", cfg.Units.Precision)
	}
	if cfg.Contrast.Background != "#ffffff" {
		t.Errorf("Background = %q, want #ffffff", cfg.Contrast.Background)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("File level = %q, want none", cfg.Logging.FileLogger.Level)
	}
	if !strings.HasSuffix(cfg.Reporting.Destination, "ubelt-report.zip") {
		t.Errorf("Reporting destination = %q, want *ubelt-report.zip", cfg.Reporting.Destination)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `version: 1
units:
  base_font_size: 18
  viewport_width: 375
  viewport_height: 667
  precision: 2
contrast:
  background: "#000"
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(dir, "logs", "test.log")+`
    mode: append
reporting:
  destination: `+filepath.Join(dir, "report.zip")+`
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Units.BaseFontSize != 18 {
		t.Errorf("BaseFontSize = %g, want 18", cfg.Units.BaseFontSize)
	}
	if cfg.Units.ViewportWidth != 375 || cfg.Units.ViewportHeight != 667 {
		t.Errorf("Viewport = %gx%g, want 375x667", cfg.Units.ViewportWidth, cfg.Units.ViewportHeight)
	}
	if cfg.Units.Precision != 2 {
		t.Errorf("Precision = %d, want 2", cfg.Units.Precision)
	}
	if cfg.Contrast.Background != "#000" {
		t.Errorf("Background = %q, want #000", cfg.Contrast.Background)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("File mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	path := writeConfig(t, `version: 1
units:
  base_font_size: 20
`)
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Units.BaseFontSize != 20 {
		t.Errorf("BaseFontSize = %g, want 20", cfg.Units.BaseFontSize)
	}
	// untouched values come from template
	if cfg.Units.ViewportWidth != 1920 {
		t.Errorf("ViewportWidth = %g, want default 1920", cfg.Units.ViewportWidth)
	}
	if cfg.Contrast.Background != "#ffffff" {
		t.Errorf("Background = %q, want default #ffffff", cfg.Contrast.Background)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `version: 1
units:
  base_font_size: 16
  invalid indent
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	path := writeConfig(t, `version: 1
unknown_field: value
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"version", "version: 2\n", "Version"},
		{"zero base font", "version: 1\nunits:\n  base_font_size: 0\n", "BaseFontSize"},
		{"negative base font", "version: 1\nunits:\n  base_font_size: -4\n", "BaseFontSize"},
		{"negative viewport", "version: 1\nunits:\n  viewport_width: -1\n", "ViewportWidth"},
		{"precision too big", "version: 1\nunits:\n  precision: 20\n", "Precision"},
		{"empty background", "version: 1\ncontrast:\n  background: \"\"\n", "Background"},
		{"bad console level", "version: 1\nlogging:\n  console:\n    level: loud\n", "Level"},
		{"bad file mode", "version: 1\nlogging:\n  file:\n    mode: rotate\n", "Mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected validator.ValidationErrors, got %T: %v", err, err)
			}
			found := false
			for _, fe := range verrs {
				if fe.Field() == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error for field %s, got %v", tt.field, verrs)
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}
	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Units: UnitsConfig{
			BaseFontSize:   14,
			ViewportWidth:  800,
			ViewportHeight: 600,
			Precision:      3,
		},
		Contrast: ContrastConfig{Background: "#fafafa"},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Units != cfg.Units {
		t.Errorf("Units mismatch after dump/load: got %+v, want %+v", cfg2.Units, cfg.Units)
	}
	if cfg2.Contrast.Background != cfg.Contrast.Background {
		t.Errorf("Background mismatch after dump/load: got %q", cfg2.Contrast.Background)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		result, err := unmarshalConfig([]byte(`version: 1`), &Config{}, false)
		if err != nil {
			t.Fatalf("unmarshalConfig() error = %v", err)
		}
		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := unmarshalConfig([]byte("version: [1"), &Config{}, false); err == nil {
			t.Error("Expected decode error")
		}
	})

	t.Run("validation only when processing", func(t *testing.T) {
		data := []byte("version: 1\nunits:\n  base_font_size: 0\n")
		if _, err := unmarshalConfig(data, &Config{}, false); err != nil {
			t.Errorf("unmarshalConfig() without processing error = %v", err)
		}
	})
}
