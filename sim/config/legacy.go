package config

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/procsim/procsim/sim"
)

// unitMultipliers converts memory size units to kbytes.
var unitMultipliers = map[string]uint64{
	"kbytes": 1,
	"mbytes": 1024,
	"gbytes": 1024 * 1024,
}

// ParseLegacy reads the line-oriented configuration format:
//
//	Start Simulator Configuration File
//	Version/Phase: 3.0
//	File Path: Test_3.mdf
//	Processor cycle time {msec}: 10
//	Monitor display time {msec}: 20
//	Log: Log to Both
//	Log File Path: logfile_3.lgf
//	System memory {kbytes}: 2048
//	Memory block size {kbytes}: 128
//	Printer quantity: 2
//	Hard drive quantity: 2
//	End Simulator Configuration File
func ParseLegacy(src string) (*Config, error) {
	cfg := &Config{}
	scanner := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "Start ") || strings.HasPrefix(line, "End ") {
			continue
		}
		rawKey, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"<setting>: <value>\", got %q", lineNo, line)
		}
		if err := cfg.applyLegacy(strings.TrimSpace(rawKey), strings.TrimSpace(value)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyLegacy(rawKey, value string) error {
	key, unit := splitUnit(rawKey)
	lower := strings.ToLower(key)

	switch {
	case lower == "version/phase":
		c.Version = value
	case lower == "file path":
		c.ScriptPath = value
	case lower == "log":
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return fmt.Errorf("log target is empty")
		}
		c.Log.Target = LogTarget(fields[len(fields)-1])
	case lower == "log file path":
		c.Log.Path = value
	case lower == "system memory":
		kb, err := parseSize(value, unit)
		if err != nil {
			return fmt.Errorf("system memory: %w", err)
		}
		c.SystemMemoryKB = kb
	case lower == "memory block size":
		kb, err := parseSize(value, unit)
		if err != nil {
			return fmt.Errorf("memory block size: %w", err)
		}
		c.BlockSizeKB = kb
	case lower == "printer quantity":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("printer quantity: %w", err)
		}
		c.Printers = n
	case lower == "hard drive quantity":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("hard drive quantity: %w", err)
		}
		c.HardDrives = n
	default:
		name, ok := componentName(key)
		if !ok {
			return fmt.Errorf("unrecognized setting %q", rawKey)
		}
		if value == "" {
			return fmt.Errorf("%s: %w", name, ErrMissingCycleTime)
		}
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s cycle time: %w", name, err)
		}
		c.Components = append(c.Components, sim.CostEntry{Name: name, MsPerCycle: ms})
	}
	return nil
}

// componentName extracts "Hard drive" from "Hard drive cycle time" and
// "Monitor" from "Monitor display time".
func componentName(key string) (string, bool) {
	for _, suffix := range []string{" cycle time", " display time"} {
		if name, ok := strings.CutSuffix(key, suffix); ok && name != "" {
			return name, true
		}
	}
	return "", false
}

// splitUnit separates a trailing "{unit}" from a setting name.
func splitUnit(rawKey string) (key, unit string) {
	open := strings.IndexByte(rawKey, '{')
	if open < 0 || !strings.HasSuffix(rawKey, "}") {
		return rawKey, ""
	}
	return strings.TrimSpace(rawKey[:open]), strings.ToLower(rawKey[open+1 : len(rawKey)-1])
}

// parseSize converts a size in unit to kbytes. An empty unit means kbytes.
func parseSize(value, unit string) (uint32, error) {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, err
	}
	if unit == "" {
		unit = "kbytes"
	}
	mult, ok := unitMultipliers[unit]
	if !ok {
		return 0, fmt.Errorf("unknown size unit %q; valid: kbytes, Mbytes, Gbytes", unit)
	}
	kb := n * mult
	if kb > 1<<32-1 {
		return 0, fmt.Errorf("%d %s overflows the address space", n, unit)
	}
	return uint32(kb), nil
}
