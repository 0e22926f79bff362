package renderer

import (
	"fmt"

	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

// vertexBufferBinding is the table entry for one vertex buffer slot.
type vertexBufferBinding struct {
	buffer Handle
	offset uint64
	stride uint32
}

type vertexLayoutResource struct {
	attributes []metadata.VertexAttribute
	// Per-slot vertex buffer bindings of this layout.
	buffers []vertexBufferBinding
	// Element buffer bound to this layout, or nil.
	indexBuffer Handle
}

// CreateVertexLayout builds an immutable vertex fetch description. The
// attribute list pins shader locations to buffer slots; the buffers
// themselves are bound later through BindVertexBuffers.
func (d *Device) CreateVertexLayout(attributes []metadata.VertexAttribute) (Handle, error) {
	if uint32(len(attributes)) > d.limits.MaxVertexAttributes {
		return NilHandle, d.validationFailed(fmt.Errorf("%w: %d attributes exceeds %d",
			ErrLimitExceeded, len(attributes), d.limits.MaxVertexAttributes))
	}
	seen := map[uint32]bool{}
	for _, attr := range attributes {
		if attr.Format.Size() == 0 {
			return NilHandle, d.validationFailed(fmt.Errorf("%w: vertex format %d",
				ErrUnsupportedFormat, attr.Format))
		}
		if attr.Binding >= d.limits.MaxVertexBuffers {
			return NilHandle, d.validationFailed(fmt.Errorf("%w: vertex buffer slot %d of %d",
				ErrSlotOutOfRange, attr.Binding, d.limits.MaxVertexBuffers))
		}
		if seen[attr.Location] {
			return NilHandle, d.validationFailed(fmt.Errorf("%w: duplicate attribute location %d",
				ErrIncompatibleVertexLayout, attr.Location))
		}
		seen[attr.Location] = true
	}

	native, err := d.backend.CreateVertexLayout(attributes)
	if err != nil {
		return NilHandle, fmt.Errorf("create vertex layout: %w", err)
	}
	res := &vertexLayoutResource{
		attributes: append([]metadata.VertexAttribute(nil), attributes...),
		buffers:    make([]vertexBufferBinding, d.limits.MaxVertexBuffers),
	}
	return d.registry.allocate(ResourceKindVertexLayout, native, res), nil
}

// DestroyVertexLayout releases the layout. If it is the currently bound
// layout the binding is cleared.
func (d *Device) DestroyVertexLayout(h Handle) error {
	entry, err := d.registry.release(h, ResourceKindVertexLayout)
	if err != nil {
		return d.validationFailed(err)
	}
	if d.table.vertexLayout == h {
		d.table.vertexLayout = NilHandle
		d.backend.BindVertexLayout(0)
	}
	d.backend.DeleteVertexLayout(entry.native)
	return nil
}
