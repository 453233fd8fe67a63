package grove

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultDragRadius is the distance in pixels a pointer must travel from its
// start point before a drag begins.
const DefaultDragRadius = 4.0

// Config tunes a Dispatcher. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	// DragRadius is used by StartDrag when DragOptions.Radius is not set.
	DragRadius float64 `toml:"drag_radius"`
	// PerRootDragState tracks IsDragging per dispatch root instead of one
	// flag shared by every root the dispatcher serves.
	PerRootDragState bool `toml:"per_root_drag_state"`
	// Debug logs every dispatch and drag transition.
	Debug bool `toml:"debug"`
	// LogLevel is one of debug, info, warn, error. Empty means info, or
	// debug when Debug is set.
	LogLevel string `toml:"log_level"`
	// MaxTraceDepth warns when a trace gets deeper than this. Zero disables.
	MaxTraceDepth int `toml:"max_trace_depth"`
}

// DefaultConfig returns the shared-state, single-root defaults.
func DefaultConfig() Config {
	return Config{
		DragRadius:    DefaultDragRadius,
		MaxTraceDepth: 32,
	}
}

// DecodeConfig parses TOML over the defaults.
func DecodeConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// LoadConfig reads a TOML file. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
	}
	return DecodeConfig(data)
}

// WriteConfig encodes cfg as TOML to path.
func WriteConfig(path string, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	if c.DragRadius < 0 {
		return fmt.Errorf("config: drag_radius must be >= 0, got %v", c.DragRadius)
	}
	if c.MaxTraceDepth < 0 {
		return fmt.Errorf("config: max_trace_depth must be >= 0, got %d", c.MaxTraceDepth)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}
