package renderer

import (
	"github.com/spaghettifunk/ignis/engine/core"
	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

// Device is the explicit front of a native context. It owns the handle
// registry and the binding slot table and translates every call into native
// state writes through its Backend.
//
// A device and its handles must be used from the goroutine that owns the
// native context. Handle allocation itself is safe for concurrent use, but
// binding and submission are not synchronized.
type Device struct {
	backend  Backend
	registry *registry
	limits   metadata.DeviceLimits
	debug    bool

	table     bindingTable
	defaultFB Handle

	groupDepth    int
	activeQueries map[metadata.QueryKind]Handle
}

// Option configures a Device during New.
type Option func(*Device)

// WithConfig applies a loaded configuration to the device. Slot caps from
// the config lower the captured native limits; they never raise them.
func WithConfig(cfg *Config) Option {
	return func(d *Device) {
		cfg.applyLogLevel()
		d.debug = cfg.Debug
		d.limits.MaxTextureSlots = clampSlots(d.limits.MaxTextureSlots, cfg.MaxTextureSlots)
		d.limits.MaxSamplerSlots = clampSlots(d.limits.MaxSamplerSlots, cfg.MaxSamplerSlots)
		d.limits.MaxUniformBufferSlots = clampSlots(d.limits.MaxUniformBufferSlots, cfg.MaxUniformBufferSlots)
		d.limits.MaxStorageBufferSlots = clampSlots(d.limits.MaxStorageBufferSlots, cfg.MaxStorageBufferSlots)
		d.limits.MaxVertexBuffers = clampSlots(d.limits.MaxVertexBuffers, cfg.MaxVertexBuffers)
	}
}

// WithDebug toggles a log line for every failed validation.
func WithDebug(enabled bool) Option {
	return func(d *Device) { d.debug = enabled }
}

// New wraps a backend into a device. The backend's limits are captured once
// here and never re-queried.
func New(backend Backend, opts ...Option) (*Device, error) {
	d := &Device{
		backend:       backend,
		registry:      newRegistry(),
		limits:        backend.Limits(),
		activeQueries: map[metadata.QueryKind]Handle{},
	}
	for _, opt := range opts {
		opt(d)
	}

	d.table = newBindingTable(d.limits)

	// Native object 0 is the window-system framebuffer.
	d.defaultFB = d.registry.allocate(ResourceKindFramebuffer, 0, &framebufferResource{isDefault: true})
	d.table.framebuffer = d.defaultFB

	core.LogInfo("device ready: %d texture slots, %d vertex buffers, %d color attachments",
		d.limits.MaxTextureSlots, d.limits.MaxVertexBuffers, d.limits.MaxColorAttachments)
	return d, nil
}

// Limits returns the limits snapshot captured at creation.
func (d *Device) Limits() metadata.DeviceLimits { return d.limits }

// DefaultFramebuffer returns the handle of the window-system framebuffer.
// It is always live and cannot be destroyed.
func (d *Device) DefaultFramebuffer() Handle { return d.defaultFB }

// LiveResources reports how many handles are currently live, including the
// default framebuffer.
func (d *Device) LiveResources() int { return d.registry.liveCount() }

// Shutdown releases the native context. Handles are not individually
// destroyed; the context teardown reclaims them.
func (d *Device) Shutdown() {
	if n := d.registry.liveCount(); n > 1 {
		core.LogDebug("shutdown with %d live resources", n-1)
	}
	d.backend.Shutdown()
}

// validationFailed funnels every rejected call through one place so debug
// mode can log it.
func (d *Device) validationFailed(err error) error {
	if d.debug && err != nil {
		core.LogError("validation: %v", err)
	}
	return err
}
