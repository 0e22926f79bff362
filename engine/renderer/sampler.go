package renderer

import (
	"fmt"

	vmath "github.com/spaghettifunk/ignis/engine/math"
	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

type samplerResource struct {
	desc metadata.SamplerDesc
}

// CreateSampler creates an immutable sampler object. Anisotropy above the
// device maximum is clamped rather than rejected.
func (d *Device) CreateSampler(desc metadata.SamplerDesc) (Handle, error) {
	if desc.MaxAnisotropy > d.limits.MaxAnisotropy {
		desc.MaxAnisotropy = vmath.Clamp(desc.MaxAnisotropy, 1, d.limits.MaxAnisotropy)
	}

	native, err := d.backend.CreateSampler(desc)
	if err != nil {
		return NilHandle, fmt.Errorf("create sampler: %w", err)
	}
	return d.registry.allocate(ResourceKindSampler, native, &samplerResource{desc: desc}), nil
}

// DestroySampler releases the sampler and clears every sampler slot that
// still refers to it.
func (d *Device) DestroySampler(h Handle) error {
	entry, err := d.registry.release(h, ResourceKindSampler)
	if err != nil {
		return d.validationFailed(err)
	}
	d.evictSampler(h)
	d.backend.DeleteSampler(entry.native)
	return nil
}
