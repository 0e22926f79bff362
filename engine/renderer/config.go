package renderer

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/ignis/engine/core"
)

// Config carries tunables read from a TOML file. All fields are optional;
// zero values leave the corresponding device default in place.
type Config struct {
	// Emit a log line for every failed validation.
	Debug bool `toml:"debug"`
	// One of "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level"`
	// Optional caps applied on top of the native limits. A value of zero,
	// or one above the native limit, keeps the native limit.
	MaxTextureSlots       uint32 `toml:"max_texture_slots"`
	MaxSamplerSlots       uint32 `toml:"max_sampler_slots"`
	MaxUniformBufferSlots uint32 `toml:"max_uniform_buffer_slots"`
	MaxStorageBufferSlots uint32 `toml:"max_storage_buffer_slots"`
	MaxVertexBuffers      uint32 `toml:"max_vertex_buffers"`
}

// LoadConfig reads a device configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyLogLevel() {
	switch c.LogLevel {
	case "debug":
		core.SetLogLevel(core.DebugLevel)
	case "info":
		core.SetLogLevel(core.InfoLevel)
	case "warn":
		core.SetLogLevel(core.WarnLevel)
	case "error":
		core.SetLogLevel(core.ErrorLevel)
	case "":
	default:
		core.LogWarn("unknown log level %q, keeping current level", c.LogLevel)
	}
}

// clampSlots lowers a native slot count to a configured cap.
func clampSlots(native, cap uint32) uint32 {
	if cap == 0 || cap >= native {
		return native
	}
	return cap
}
