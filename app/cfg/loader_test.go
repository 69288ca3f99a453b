package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		ListingsDir:  "./listings",
		Port:         "8080",
		DBPath:       "./cleanings.db",
		WorkerCount:  5,
		FetchTimeout: 10,
		APIAccessKey: "test-key",
		UserAgent:    "Test Agent",
		Timezone:     "UTC",
		Debug:        true,
		Version:      "test-version",
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.ListingsDir != "./listings" {
		t.Errorf("Expected listings dir './listings', got '%s'", cfg.ListingsDir)
	}
	if cfg.DBPath != "./cleanings.db" {
		t.Errorf("Expected DB path './cleanings.db', got '%s'", cfg.DBPath)
	}
	if cfg.WorkerCount != 5 {
		t.Errorf("Expected worker count 5, got %d", cfg.WorkerCount)
	}
	if cfg.FetchTimeout != 10 {
		t.Errorf("Expected fetch timeout 10, got %d", cfg.FetchTimeout)
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestGetPanicsWhenNotLoaded(t *testing.T) {
	saved := globalCfg
	globalCfg = nil
	defer func() {
		globalCfg = saved
		if r := recover(); r == nil {
			t.Error("Expected Get to panic before Load")
		}
	}()

	Get()
}
