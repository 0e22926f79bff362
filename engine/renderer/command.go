package renderer

import (
	"fmt"

	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

// Range is a half-open [Start, End) element range.
type Range struct {
	Start uint32
	End   uint32
}

// Count returns the number of elements in the range.
func (r Range) Count() uint32 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Byte sizes of one native indirect command record.
const (
	drawIndirectStride        = 16
	drawIndexedIndirectStride = 20
)

// Draw records a non-indexed draw. Every precondition is checked before
// any native call: a graphics pipeline must be bound and, when the
// pipeline consumes vertex inputs, a compatible vertex layout with buffers
// on every referenced slot.
func (d *Device) Draw(topology metadata.PrimitiveTopology, vertices, instances Range) error {
	pipe, err := d.requireGraphicsPipeline()
	if err != nil {
		return err
	}
	if err := d.checkVertexCompat(pipe); err != nil {
		return err
	}
	if vertices.Count() == 0 || instances.Count() == 0 {
		return nil
	}
	d.backend.Draw(topology, vertices.Start, vertices.Count(), instances.Start, instances.Count())
	return nil
}

// DrawIndexed records an indexed draw using the index buffer attached to
// the bound vertex layout.
func (d *Device) DrawIndexed(topology metadata.PrimitiveTopology, indexType metadata.IndexType,
	indices, instances Range, baseVertex int32) error {

	pipe, err := d.requireGraphicsPipeline()
	if err != nil {
		return err
	}
	if err := d.checkVertexCompat(pipe); err != nil {
		return err
	}
	if err := d.requireIndexBuffer(); err != nil {
		return err
	}
	if indices.Count() == 0 || instances.Count() == 0 {
		return nil
	}
	d.backend.DrawIndexed(topology, indexType, indices.Start, indices.Count(),
		instances.Start, instances.Count(), baseVertex)
	return nil
}

// DrawIndirect records drawCount non-indexed draws whose parameters are
// read from a buffer on the device. The primitive topology comes from the
// bound pipeline's input assembly block. A stride of zero means tightly
// packed records.
func (d *Device) DrawIndirect(buffer Handle, offset uint64, drawCount, stride uint32) error {
	pipe, err := d.requireGraphicsPipeline()
	if err != nil {
		return err
	}
	if err := d.checkVertexCompat(pipe); err != nil {
		return err
	}
	if err := d.bindIndirect(buffer, offset, drawCount, stride, drawIndirectStride); err != nil {
		return err
	}
	if drawCount == 0 {
		return nil
	}
	d.backend.DrawIndirect(pipe.inputAssembly.Topology, offset, drawCount, stride)
	return nil
}

// DrawIndexedIndirect records drawCount indexed draws whose parameters are
// read from a buffer on the device.
func (d *Device) DrawIndexedIndirect(buffer Handle, indexType metadata.IndexType,
	offset uint64, drawCount, stride uint32) error {

	pipe, err := d.requireGraphicsPipeline()
	if err != nil {
		return err
	}
	if err := d.checkVertexCompat(pipe); err != nil {
		return err
	}
	if err := d.requireIndexBuffer(); err != nil {
		return err
	}
	if err := d.bindIndirect(buffer, offset, drawCount, stride, drawIndexedIndirectStride); err != nil {
		return err
	}
	if drawCount == 0 {
		return nil
	}
	d.backend.DrawIndexedIndirect(pipe.inputAssembly.Topology, indexType, offset, drawCount, stride)
	return nil
}

// Dispatch records a compute dispatch. A compute pipeline must be bound
// and the group counts must stay within the device limits.
func (d *Device) Dispatch(groupsX, groupsY, groupsZ uint32) error {
	pipe, err := d.requirePipeline()
	if err != nil {
		return err
	}
	if !pipe.compute {
		return d.validationFailed(fmt.Errorf("%w: graphics pipeline bound for dispatch", ErrNoPipelineBound))
	}
	groups := [3]uint32{groupsX, groupsY, groupsZ}
	for i, g := range groups {
		if g > d.limits.MaxComputeGroupCount[i] {
			return d.validationFailed(fmt.Errorf("%w: %d work groups on axis %d exceeds %d",
				ErrLimitExceeded, g, i, d.limits.MaxComputeGroupCount[i]))
		}
	}
	if groupsX == 0 || groupsY == 0 || groupsZ == 0 {
		return nil
	}
	d.backend.Dispatch(groupsX, groupsY, groupsZ)
	return nil
}

// ClearAttachment writes a clear value into one attachment of a
// framebuffer. The framebuffer does not need to be the current draw
// target and no pipeline needs to be bound.
func (d *Device) ClearAttachment(fb Handle, point metadata.AttachmentPoint, value metadata.ClearValue) error {
	entry, err := d.registry.resolve(fb, ResourceKindFramebuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	res := entry.payload.(*framebufferResource)
	if !res.hasAttachment(point) {
		return d.validationFailed(fmt.Errorf("%w: attachment point %d is not populated",
			ErrInvalidAttachmentSet, point))
	}
	if err := checkClearValue(point, value); err != nil {
		return d.validationFailed(err)
	}
	d.backend.ClearAttachment(entry.native, point, value)
	return nil
}

// Barrier orders prior writes against subsequent accesses named by the
// mask.
func (d *Device) Barrier(mask metadata.BarrierMask) {
	d.backend.MemoryBarrier(mask)
}

// SetViewport sets consecutive viewports starting at first.
func (d *Device) SetViewport(first uint32, viewports []metadata.Viewport) {
	d.backend.SetViewport(first, viewports)
}

// SetScissor sets consecutive scissor rectangles starting at first.
func (d *Device) SetScissor(first uint32, regions []metadata.Region) {
	d.backend.SetScissor(first, regions)
}

func (d *Device) requirePipeline() (*pipelineResource, error) {
	if d.table.pipeline.IsNil() {
		return nil, d.validationFailed(ErrNoPipelineBound)
	}
	entry, err := d.registry.resolve(d.table.pipeline, ResourceKindPipeline)
	if err != nil {
		return nil, d.validationFailed(err)
	}
	return entry.payload.(*pipelineResource), nil
}

func (d *Device) requireGraphicsPipeline() (*pipelineResource, error) {
	pipe, err := d.requirePipeline()
	if err != nil {
		return nil, err
	}
	if pipe.compute {
		return nil, d.validationFailed(fmt.Errorf("%w: compute pipeline bound for draw", ErrNoPipelineBound))
	}
	return pipe, nil
}

// checkVertexCompat verifies that the bound vertex layout can feed every
// vertex input of the pipeline.
func (d *Device) checkVertexCompat(pipe *pipelineResource) error {
	if len(pipe.inputs) == 0 {
		return nil
	}
	if d.table.vertexLayout.IsNil() {
		return d.validationFailed(fmt.Errorf("%w: pipeline consumes vertex inputs but no layout is bound",
			ErrIncompatibleVertexLayout))
	}
	entry, err := d.registry.resolve(d.table.vertexLayout, ResourceKindVertexLayout)
	if err != nil {
		return d.validationFailed(err)
	}
	res := entry.payload.(*vertexLayoutResource)

	for _, input := range pipe.inputs {
		attr, ok := findAttribute(res.attributes, input.Location)
		if !ok {
			return d.validationFailed(fmt.Errorf("%w: no attribute at location %d",
				ErrIncompatibleVertexLayout, input.Location))
		}
		if attr.Format.BaseType() != input.BaseType {
			return d.validationFailed(fmt.Errorf("%w: base type mismatch at location %d",
				ErrIncompatibleVertexLayout, input.Location))
		}
		if attr.Format.Components() < input.Components {
			return d.validationFailed(fmt.Errorf("%w: attribute at location %d supplies %d of %d components",
				ErrIncompatibleVertexLayout, input.Location, attr.Format.Components(), input.Components))
		}
		if res.buffers[attr.Binding].buffer.IsNil() {
			return d.validationFailed(fmt.Errorf("%w: no vertex buffer bound to slot %d",
				ErrIncompatibleVertexLayout, attr.Binding))
		}
	}
	return nil
}

func findAttribute(attributes []metadata.VertexAttribute, location uint32) (metadata.VertexAttribute, bool) {
	for _, attr := range attributes {
		if attr.Location == location {
			return attr, true
		}
	}
	return metadata.VertexAttribute{}, false
}

func (d *Device) requireIndexBuffer() error {
	entry, err := d.registry.resolve(d.table.vertexLayout, ResourceKindVertexLayout)
	if err != nil {
		return d.validationFailed(fmt.Errorf("%w: no vertex layout bound for an indexed draw",
			ErrIncompatibleVertexLayout))
	}
	if entry.payload.(*vertexLayoutResource).indexBuffer.IsNil() {
		return d.validationFailed(fmt.Errorf("%w: the bound layout has no index buffer attached",
			ErrIncompatibleVertexLayout))
	}
	return nil
}

// bindIndirect validates an indirect parameter buffer and makes it the
// current indirect source.
func (d *Device) bindIndirect(buffer Handle, offset uint64, drawCount, stride, recordSize uint32) error {
	entry, err := d.registry.resolve(buffer, ResourceKindBuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	buf := entry.payload.(*bufferResource)
	if !buf.usage.Has(metadata.BufferUsageIndirect) {
		return d.validationFailed(fmt.Errorf("%w: %s lacks indirect usage", ErrUsageViolation, buffer))
	}
	span := uint64(stride)
	if stride == 0 {
		span = uint64(recordSize)
	}
	if drawCount > 0 {
		total := span*uint64(drawCount-1) + uint64(recordSize)
		if err := checkBufferRange(buf, offset, total); err != nil {
			return d.validationFailed(err)
		}
	}
	d.table.indirectBuffer = buffer
	d.backend.BindDrawIndirectBuffer(entry.native)
	return nil
}

func checkClearValue(point metadata.AttachmentPoint, value metadata.ClearValue) error {
	colorKind := value.Kind == metadata.ClearValueKindColorFloat ||
		value.Kind == metadata.ClearValueKindColorInt ||
		value.Kind == metadata.ClearValueKindColorUint
	if point.IsColor() != colorKind {
		return fmt.Errorf("%w: clear value kind %d for attachment point %d",
			ErrInvalidAttachmentSet, value.Kind, point)
	}
	return nil
}
