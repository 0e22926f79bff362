package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturesLimits(t *testing.T) {
	d, b := newTestDevice(t)
	assert.Equal(t, b.limits, d.Limits())

	// The default framebuffer is live from the start.
	assert.Equal(t, 1, d.LiveResources())
	assert.False(t, d.DefaultFramebuffer().IsNil())
}

func TestWithConfigClampsSlots(t *testing.T) {
	backend := newFakeBackend()
	d, err := New(backend, WithConfig(&Config{
		MaxTextureSlots:  4,
		MaxSamplerSlots:  100, // above native, kept at native
		MaxVertexBuffers: 2,
	}))
	require.NoError(t, err)

	assert.Equal(t, uint32(4), d.Limits().MaxTextureSlots)
	assert.Equal(t, backend.limits.MaxSamplerSlots, d.Limits().MaxSamplerSlots)
	assert.Equal(t, uint32(2), d.Limits().MaxVertexBuffers)

	// The slot table honors the clamped limit.
	img := newSampledImage(t, d)
	assert.ErrorIs(t, d.BindTextures(4, []Handle{img}), ErrSlotOutOfRange)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
debug = true
log_level = "warn"
max_texture_slots = 8
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, uint32(8), cfg.MaxTextureSlots)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.toml")
	require.NoError(t, os.WriteFile(path, []byte("debug = [broken"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestShutdown(t *testing.T) {
	d, b := newTestDevice(t)
	d.Shutdown()
	assert.Len(t, b.named("Shutdown"), 1)
}
