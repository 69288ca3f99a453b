package listing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestConfigCacheLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
name: "Seaside Cottage"
url: "https://calendar.example.com/seaside.ics"
rate: "85.00"
enabled: true
`
	writeConfig(t, tempDir, "seaside.yml", content)

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	if configCache.GetConfigCount() != 1 {
		t.Errorf("Expected 1 config, got %d", configCache.GetConfigCount())
	}

	config, err := configCache.GetConfig("seaside")
	if err != nil {
		t.Fatal(err)
	}

	if config.Name != "seaside" {
		t.Errorf("Expected name 'seaside', got '%s'", config.Name)
	}
	if config.DisplayName != "Seaside Cottage" {
		t.Errorf("Expected display name 'Seaside Cottage', got '%s'", config.DisplayName)
	}
	if config.URL != "https://calendar.example.com/seaside.ics" {
		t.Errorf("Expected URL 'https://calendar.example.com/seaside.ics', got '%s'", config.URL)
	}
	if !config.RateAmount.Equal(decimal.RequireFromString("85.00")) {
		t.Errorf("Expected rate 85.00, got %s", config.RateAmount)
	}
	if !config.Enabled {
		t.Error("Expected listing to be enabled")
	}
}

func TestConfigCacheRateDefaultsToZero(t *testing.T) {
	tempDir := t.TempDir()

	content := `
name: "City Loft"
url: "https://calendar.example.com/loft.ics"
enabled: true
`
	writeConfig(t, tempDir, "loft.yml", content)

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	config, err := configCache.GetConfig("loft")
	if err != nil {
		t.Fatal(err)
	}

	if !config.RateAmount.IsZero() {
		t.Errorf("Expected zero rate when omitted, got %s", config.RateAmount)
	}
}

func TestConfigCacheRejectsMissingURL(t *testing.T) {
	tempDir := t.TempDir()

	content := `
name: "No Feed"
rate: "55.00"
`
	writeConfig(t, tempDir, "nofeed.yml", content)

	configCache := NewConfigCache(tempDir)
	err := configCache.Run()
	if err == nil {
		t.Fatal("Expected error for missing URL")
	}
	if !strings.Contains(err.Error(), "feed URL is required") {
		t.Errorf("Expected missing URL error, got: %v", err)
	}
}

func TestConfigCacheRejectsNegativeRate(t *testing.T) {
	tempDir := t.TempDir()

	content := `
name: "Bad Rate"
url: "https://calendar.example.com/bad.ics"
rate: "-10"
`
	writeConfig(t, tempDir, "bad.yml", content)

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err == nil {
		t.Fatal("Expected error for negative rate")
	}
}

func TestConfigCacheGetEnabledConfigs(t *testing.T) {
	tempDir := t.TempDir()

	writeConfig(t, tempDir, "a.yml", "name: A\nurl: https://example.com/a.ics\nenabled: true\n")
	writeConfig(t, tempDir, "b.yml", "name: B\nurl: https://example.com/b.ics\nenabled: false\n")

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	enabled := configCache.GetEnabledConfigs()
	if len(enabled) != 1 {
		t.Fatalf("Expected 1 enabled config, got %d", len(enabled))
	}
	if _, ok := enabled["a"]; !ok {
		t.Error("Expected listing 'a' to be enabled")
	}
}

func TestConfigCacheMissingDirIsNotAnError(t *testing.T) {
	configCache := NewConfigCache(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := configCache.Run(); err != nil {
		t.Errorf("Expected no error for missing directory, got: %v", err)
	}
	if configCache.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configs, got %d", configCache.GetConfigCount())
	}
}
