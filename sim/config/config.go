// Package config loads the resource-cost configuration: per-component cycle
// times, the log destination, memory sizes and device quantities.
//
// Two formats are accepted. Files ending in .yaml or .yml are decoded
// strictly as YAML; anything else is read as the line-oriented
// "Simulator Configuration File" format.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/procsim/procsim/sim"
)

var (
	ErrEmptyConfig      = errors.New("empty configuration file")
	ErrMissingCycleTime = errors.New("missing one or more cycle time in the config file")
)

// LogTarget selects where simulation events are written.
type LogTarget string

const (
	LogMonitor LogTarget = "Monitor"
	LogFile    LogTarget = "File"
	LogBoth    LogTarget = "Both"
)

var validLogTargets = map[LogTarget]bool{
	LogMonitor: true, LogFile: true, LogBoth: true,
}

// ToConsole reports whether events go to the console.
func (t LogTarget) ToConsole() bool { return t == LogMonitor || t == LogBoth }

// ToFile reports whether events go to the log file.
func (t LogTarget) ToFile() bool { return t == LogFile || t == LogBoth }

// LogConfig is the log destination.
type LogConfig struct {
	Target LogTarget `yaml:"target"`
	Path   string    `yaml:"path,omitempty"`
}

// Config is a loaded configuration. Relative paths are resolved against the
// directory of the file it was loaded from.
type Config struct {
	Version        string          `yaml:"version,omitempty"`
	ScriptPath     string          `yaml:"script_path"`
	Components     []sim.CostEntry `yaml:"components"`
	Log            LogConfig       `yaml:"log"`
	SystemMemoryKB uint32          `yaml:"system_memory_kb,omitempty"`
	BlockSizeKB    uint32          `yaml:"block_size_kb,omitempty"`
	Printers       int             `yaml:"printers,omitempty"`
	HardDrives     int             `yaml:"hard_drives,omitempty"`

	dir string
}

// Load reads, parses and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyConfig)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = ParseYAML(data)
	default:
		cfg, err = ParseLegacy(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// CostTable builds the component cost table.
func (c *Config) CostTable() (*sim.CostTable, error) {
	return sim.NewCostTable(c.Components...)
}

// Resources returns the device and memory quantities for the Simulator.
func (c *Config) Resources() sim.Resources {
	return sim.Resources{
		HardDrives:   c.HardDrives,
		Printers:     c.Printers,
		SystemMemory: c.SystemMemoryKB,
		BlockSize:    c.BlockSizeKB,
	}
}

// ResolvedScriptPath is ScriptPath relative to the configuration's directory.
func (c *Config) ResolvedScriptPath() string {
	return c.resolve(c.ScriptPath)
}

// ResolvedLogPath is Log.Path relative to the configuration's directory.
func (c *Config) ResolvedLogPath() string {
	return c.resolve(c.Log.Path)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Validate checks the configuration for values the Simulator cannot run with.
func (c *Config) Validate() error {
	if len(c.Components) == 0 {
		return fmt.Errorf("no component cycle times configured")
	}
	costs, err := c.CostTable()
	if err != nil {
		return err
	}
	if c.ScriptPath == "" {
		return fmt.Errorf("meta-data file path is required")
	}
	if !validLogTargets[c.Log.Target] {
		return fmt.Errorf("unknown log target %q; valid: Monitor, File, Both", c.Log.Target)
	}
	if c.Log.Target.ToFile() && c.Log.Path == "" {
		return fmt.Errorf("log target %s requires a log file path", c.Log.Target)
	}
	if c.Printers < 0 || c.HardDrives < 0 {
		return fmt.Errorf("device quantities must be non-negative, got printers=%d hard drives=%d", c.Printers, c.HardDrives)
	}
	if len(costs.MatchDevice(sim.DeviceHardDrive)) > 0 && c.HardDrives < 1 {
		return fmt.Errorf("hard drive quantity must be at least 1 when a hard drive cycle time is configured")
	}
	if len(costs.MatchDevice(sim.DevicePrinter)) > 0 && c.Printers < 1 {
		return fmt.Errorf("printer quantity must be at least 1 when a printer cycle time is configured")
	}
	if _, ok := costs.Lookup(sim.ComponentMemory); ok {
		if c.SystemMemoryKB == 0 || c.BlockSizeKB == 0 {
			return fmt.Errorf("system memory and memory block size are required when a memory cycle time is configured")
		}
	}
	if c.BlockSizeKB > c.SystemMemoryKB {
		return fmt.Errorf("memory block size %dkB exceeds system memory %dkB", c.BlockSizeKB, c.SystemMemoryKB)
	}
	return nil
}
