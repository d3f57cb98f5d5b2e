// =============================================================================
// LIS Ticket Tracker - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. It covers the two paths the core consumes (the .LIS data
// directory and the ticket store file), the retention window for the
// cleanup command, and the log field schema.
//
// LOG FIELD SCHEMA:
//   The .LIS format has shifted field positions across press-controller
//   deployments, so the field offsets are part of the configuration
//   rather than hard-coded. The defaults match the current plant layout.
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Forgiving: a missing config file falls back to defaults (first run)
//   - Validated: directories are created and offsets checked on load
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
// This is loaded from the config.yaml file.
type Config struct {
	// DataDir is the directory where the press controller drops .LIS
	// log files. The scanner looks up batch files here and the cleanup
	// command sweeps it.
	// Default: "./data/lis"
	DataDir string `yaml:"data_dir"`

	// StoreFile is the path to the JSON ticket store owned by the ledger.
	// It must not live inside DataDir with a .LIS suffix, or the cleanup
	// command could sweep it.
	// Default: "./data/tickets.json"
	StoreFile string `yaml:"store_file"`

	// RetentionDays is the age in days past which .LIS files are purged
	// by the cleanup command.
	// Default: 13
	RetentionDays int `yaml:"retention_days"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogSchema describes where each field sits in a .LIS line.
	LogSchema LogSchema `yaml:"log_schema"`
}

// LogSchema maps the semantic fields of a .LIS record to their zero-based
// comma-separated field offsets.
type LogSchema struct {
	// PressFirst and PressLast bound the field range searched for the
	// press-group tokens (inclusive first, exclusive last, matching the
	// original fields[1:5] slice).
	PressFirst int `yaml:"press_first"`
	PressLast  int `yaml:"press_last"`

	ProductType     int `yaml:"product_type"`
	Operator        int `yaml:"operator"`
	Quantity        int `yaml:"quantity"`
	Material        int `yaml:"material"`
	DoorSize        int `yaml:"door_size"`
	FrameDescriptor int `yaml:"frame_descriptor"`
	Customer        int `yaml:"customer"`
	OrderNumber     int `yaml:"order_number"`
	ItemNumber      int `yaml:"item_number"`
	SequenceNumber  int `yaml:"sequence_number"`

	// MinFields is the minimum number of comma-separated fields a line
	// must have to be extracted. Shorter lines are skipped.
	MinFields int `yaml:"min_fields"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load loads the configuration from a YAML file.
//
// A missing config file is not an error: the application falls back to
// the built-in defaults so it works out of the box on first run.
func Load(configPath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// First run: use defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultLogSchema returns the field offsets for the current plant layout.
func DefaultLogSchema() LogSchema {
	return LogSchema{
		PressFirst:      1,
		PressLast:       5,
		ProductType:     3,
		Operator:        4,
		Quantity:        5,
		Material:        6,
		DoorSize:        7,
		FrameDescriptor: 8,
		Customer:        17,
		OrderNumber:     18,
		ItemNumber:      19,
		SequenceNumber:  20,
		MinFields:       21,
	}
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.DataDir == "" {
		config.DataDir = filepath.Join(".", "data", "lis")
	}
	if config.StoreFile == "" {
		config.StoreFile = filepath.Join(".", "data", "tickets.json")
	}
	if config.RetentionDays == 0 {
		config.RetentionDays = 13
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	def := DefaultLogSchema()
	s := &config.LogSchema
	if s.PressLast == 0 {
		s.PressFirst = def.PressFirst
		s.PressLast = def.PressLast
	}
	if s.Quantity == 0 {
		s.Quantity = def.Quantity
	}
	if s.ProductType == 0 {
		s.ProductType = def.ProductType
	}
	if s.Operator == 0 {
		s.Operator = def.Operator
	}
	if s.Material == 0 {
		s.Material = def.Material
	}
	if s.DoorSize == 0 {
		s.DoorSize = def.DoorSize
	}
	if s.FrameDescriptor == 0 {
		s.FrameDescriptor = def.FrameDescriptor
	}
	if s.Customer == 0 {
		s.Customer = def.Customer
	}
	if s.OrderNumber == 0 {
		s.OrderNumber = def.OrderNumber
	}
	if s.ItemNumber == 0 {
		s.ItemNumber = def.ItemNumber
	}
	if s.SequenceNumber == 0 {
		s.SequenceNumber = def.SequenceNumber
	}
	if s.MinFields == 0 {
		s.MinFields = maxOffset(*s) + 1
	}
}

// maxOffset returns the largest configured field offset.
func maxOffset(s LogSchema) int {
	max := s.PressLast - 1
	for _, v := range []int{
		s.ProductType, s.Operator, s.Quantity, s.Material, s.DoorSize,
		s.FrameDescriptor, s.Customer, s.OrderNumber, s.ItemNumber,
		s.SequenceNumber,
	} {
		if v > max {
			max = v
		}
	}
	return max
}

// validate checks the configuration and creates required directories.
func validate(config *Config) error {
	if config.RetentionDays < 0 {
		return fmt.Errorf("retention_days must not be negative, got %d", config.RetentionDays)
	}

	s := config.LogSchema
	if s.PressFirst < 0 || s.PressLast <= s.PressFirst {
		return fmt.Errorf("log_schema press field range [%d, %d) is invalid", s.PressFirst, s.PressLast)
	}
	if s.MinFields <= maxOffset(s) {
		return fmt.Errorf("log_schema min_fields %d does not cover the largest offset %d", s.MinFields, maxOffset(s))
	}

	// Create the data directory and the store file's parent if absent.
	dirs := []string{
		config.DataDir,
		filepath.Dir(config.StoreFile),
	}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}
