// Package config loads switchyard configuration: provider API keys, the
// active rule table, the agents directory, and dispatch targets. Environment
// variables take precedence over ~/.switchyard/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GoogleAPIKey    string
	DeepSeekAPIKey  string

	// RulesPath points at a YAML rule table; empty selects the builtin
	// default table.
	RulesPath string
	// AgentsDir points at a directory of agent profile Markdown files;
	// empty keeps the builtin profiles only.
	AgentsDir string

	Targets       map[string]Target
	DefaultTarget Target

	ConfigDir string
}

// FileConfig represents the structure of ~/.switchyard/config.yaml.
type FileConfig struct {
	APIKeys   APIKeysConfig     `yaml:"api_keys"`
	Rules     string            `yaml:"rules,omitempty"`
	AgentsDir string            `yaml:"agents_dir,omitempty"`
	Targets   map[string]Target `yaml:"targets,omitempty"`
	Default   *Target           `yaml:"default,omitempty"`
}

// APIKeysConfig holds API key configuration from file.
type APIKeysConfig struct {
	Anthropic string `yaml:"anthropic"`
	OpenAI    string `yaml:"openai"`
	Google    string `yaml:"google"`
	DeepSeek  string `yaml:"deepseek"`
}

// Load reads configuration from the config file and environment variables.
// Environment variables take precedence over file configuration.
func Load() (*Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	fileConfig := loadFileConfig(filepath.Join(configDir, "config.yaml"))

	cfg := &Config{
		AnthropicAPIKey: getEnvOrDefault("ANTHROPIC_API_KEY", fileConfig.APIKeys.Anthropic),
		OpenAIAPIKey:    getEnvOrDefault("OPENAI_API_KEY", fileConfig.APIKeys.OpenAI),
		GoogleAPIKey:    getEnvOrDefault("GOOGLE_API_KEY", fileConfig.APIKeys.Google),
		DeepSeekAPIKey:  getEnvOrDefault("DEEPSEEK_API_KEY", fileConfig.APIKeys.DeepSeek),
		RulesPath:       fileConfig.Rules,
		AgentsDir:       fileConfig.AgentsDir,
		ConfigDir:       configDir,
	}

	cfg.Targets = DefaultTargets()
	for agent, target := range fileConfig.Targets {
		cfg.Targets[agent] = target
	}

	cfg.DefaultTarget = defaultTarget()
	if fileConfig.Default != nil {
		cfg.DefaultTarget = *fileConfig.Default
	}

	return cfg, nil
}

// HasAdapter returns true if the API key for the given adapter is configured.
func (c *Config) HasAdapter(name string) bool {
	switch name {
	case "anthropic":
		return c.AnthropicAPIKey != ""
	case "openai":
		return c.OpenAIAPIKey != ""
	case "google":
		return c.GoogleAPIKey != ""
	case "deepseek":
		return c.DeepSeekAPIKey != ""
	case "mock":
		return true
	default:
		return false
	}
}

// loadFileConfig reads the config file, returning empty config if not found.
func loadFileConfig(path string) *FileConfig {
	cfg := &FileConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, cfg)
	return cfg
}

func getEnvOrDefault(envVar, defaultValue string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultValue
}

func getConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".switchyard")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}
