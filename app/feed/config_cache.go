package feed

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lysyi3m/pod-comb/app/podcast"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type ConfigCache struct {
	feedsDir string
	cache    map[string]*Config
	mu       sync.RWMutex
}

func NewConfigCache(feedsDir string) *ConfigCache {
	return &ConfigCache{
		feedsDir: feedsDir,
		cache:    make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.feedsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.feedsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		podcastName := strings.TrimSuffix(filepath.Base(file), ".yml")

		config, err := cc.LoadConfig(podcastName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		log.Debug().
			Str("podcast", podcastName).
			Bool("enabled", config.Settings.Enabled).
			Int("refresh_interval", config.Settings.RefreshInterval).
			Msg("Configuration loaded")
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(podcastName string) (*Config, error) {
	configFile := cc.getConfigFilePath(podcastName)
	podcastConfig, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	podcastConfig.Name = podcastName

	if err := cc.validateConfig(podcastConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[podcastConfig.Name] = podcastConfig

	return podcastConfig, nil
}

func (cc *ConfigCache) GetConfig(podcastName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	podcastConfig, ok := cc.cache[podcastName]
	if !ok {
		return nil, fmt.Errorf("podcast config with name '%s' not found", podcastName)
	}
	return podcastConfig, nil
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
		if v.Settings.Enabled {
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

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var podcastConfig Config
	if err := dec.Decode(&podcastConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if podcastConfig.Settings.RefreshInterval == 0 {
		podcastConfig.Settings.RefreshInterval = 3600
	}
	if podcastConfig.Settings.Timeout == 0 {
		podcastConfig.Settings.Timeout = 30
	}

	return &podcastConfig, nil
}

func (cc *ConfigCache) validateConfig(podcastConfig *Config) error {
	if podcastConfig == nil {
		return fmt.Errorf("podcastConfig is nil")
	}

	requiredFields := map[string]string{
		"podcast name": podcastConfig.Name,
		"podcast URL":  podcastConfig.URL,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	nonNegativeFields := map[string]int{
		"refresh interval": podcastConfig.Settings.RefreshInterval,
		"timeout":          podcastConfig.Settings.Timeout,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	if _, err := podcast.BuildConfig(podcastConfig.Options); err != nil {
		return err
	}

	return nil
}

func (cc *ConfigCache) getConfigFilePath(podcastName string) string {
	return filepath.Join(cc.feedsDir, podcastName+".yml")
}
