// Package configuration loads linelog settings from JSON or YAML and
// builds loggers from them.
package configuration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/willibrandon/linelog/core"
)

// LoggerConfiguration represents the configurable surface of a logger.
type LoggerConfiguration struct {
	MinimumLevel string              `json:"MinimumLevel,omitempty" yaml:"MinimumLevel,omitempty"`
	Channel      string              `json:"Channel,omitempty" yaml:"Channel,omitempty"`
	LineLimit    int                 `json:"LineLimit,omitempty" yaml:"LineLimit,omitempty"`
	Tags         map[string]any      `json:"Tags,omitempty" yaml:"Tags,omitempty"`
	WriteTo      []SinkConfiguration `json:"WriteTo,omitempty" yaml:"WriteTo,omitempty"`
}

// SinkConfiguration represents a sink configuration.
type SinkConfiguration struct {
	Name string         `json:"Name" yaml:"Name"`
	Args map[string]any `json:"Args,omitempty" yaml:"Args,omitempty"`
}

// Configuration is the root configuration object.
type Configuration struct {
	Linelog LoggerConfiguration `json:"Linelog" yaml:"Linelog"`
}

// LoadFromFile loads configuration from a JSON or YAML file, chosen by
// extension (.yaml/.yml is YAML, anything else JSON).
func LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return LoadFromYAML(data)
	default:
		return LoadFromJSON(data)
	}
}

// LoadFromJSON loads configuration from JSON data.
func LoadFromJSON(data []byte) (*Configuration, error) {
	var config Configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	applyDefaults(&config)
	return &config, nil
}

// LoadFromYAML loads configuration from YAML data.
func LoadFromYAML(data []byte) (*Configuration, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Configuration) {
	if config.Linelog.MinimumLevel == "" {
		config.Linelog.MinimumLevel = "info"
	}
	if config.Linelog.Channel == "" {
		config.Linelog.Channel = "app"
	}
}

// ParseLevel parses a log level string.
func ParseLevel(levelStr string) (core.Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug", "dbg":
		return core.DebugLevel, nil
	case "information", "info", "inf":
		return core.InfoLevel, nil
	case "warning", "warn", "wrn":
		return core.WarningLevel, nil
	case "error", "err":
		return core.ErrorLevel, nil
	default:
		return core.InfoLevel, fmt.Errorf("unknown log level: %s", levelStr)
	}
}

// GetString gets a string value from configuration args.
func GetString(args map[string]any, key string, defaultValue string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetInt gets an int value from configuration args.
func GetInt(args map[string]any, key string, defaultValue int) int {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case float64:
			return int(val)
		case int:
			return val
		case string:
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				return i
			}
		}
	}
	return defaultValue
}

// GetBool gets a bool value from configuration args.
func GetBool(args map[string]any, key string, defaultValue bool) bool {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case bool:
			return val
		case string:
			return strings.ToLower(val) == "true"
		}
	}
	return defaultValue
}
