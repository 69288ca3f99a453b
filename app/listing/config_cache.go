package listing

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type ConfigCache struct {
	listingsDir string
	cache       map[string]*Config
	mu          sync.RWMutex
}

func NewConfigCache(listingsDir string) *ConfigCache {
	return &ConfigCache{
		listingsDir: listingsDir,
		cache:       make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.listingsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.listingsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		// Derive listing name from filename (remove .yml extension)
		fileName := filepath.Base(file)
		listingName := fileName[:len(fileName)-4]

		config, err := cc.LoadConfig(listingName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Listing configuration loaded", "listing", listingName, "enabled", config.Enabled, "rate", config.RateAmount)
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(listingName string) (*Config, error) {
	configFile := cc.getConfigFilePath(listingName)
	config, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	// Set listing name from parameter
	config.Name = listingName

	if err := cc.validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[config.Name] = config

	return config, nil
}

func (cc *ConfigCache) GetConfig(listingName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	config, ok := cc.cache[listingName]
	if !ok {
		return nil, fmt.Errorf("listing config with name '%s' not found", listingName)
	}
	return config, nil
}

func (cc *ConfigCache) GetConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configsCopy := make(map[string]*Config, len(cc.cache))
	for k, v := range cc.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (cc *ConfigCache) GetEnabledConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	enabledConfigs := make(map[string]*Config)
	for k, v := range cc.cache {
		if v.Enabled {
			enabledConfigs[k] = v
		}
	}
	return enabledConfigs
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if config.Rate == "" {
		config.Rate = "0"
	}

	return &config, nil
}

func (cc *ConfigCache) validateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}

	requiredFields := map[string]string{
		"listing name": config.DisplayName,
		"feed URL":     config.URL,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	rate, err := decimal.NewFromString(config.Rate)
	if err != nil {
		return fmt.Errorf("rate must be a decimal number: %w", err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("rate must be non-negative")
	}
	config.RateAmount = rate

	return nil
}

func (cc *ConfigCache) getConfigFilePath(listingName string) string {
	return filepath.Join(cc.listingsDir, listingName+".yml")
}
