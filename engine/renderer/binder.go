package renderer

import (
	"fmt"

	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

// BufferRange selects a region of a buffer for a uniform or storage slot.
// A Size of zero selects everything from Offset to the end of the buffer.
type BufferRange struct {
	Buffer Handle
	Offset uint64
	Size   uint64
}

// VertexBufferView selects a region of a buffer for a vertex buffer slot.
type VertexBufferView struct {
	Buffer Handle
	Offset uint64
	Stride uint32
}

// bufferRangeBinding is the table entry for one uniform or storage slot.
type bufferRangeBinding struct {
	buffer Handle
	offset uint64
	size   uint64
}

// bindingTable mirrors the native binding state slot for slot. It is the
// single source of truth for what is bound; the native state is only ever
// mutated together with it. Each resource kind has its own slot namespace.
type bindingTable struct {
	pipeline     Handle
	vertexLayout Handle
	framebuffer  Handle

	textures       []Handle
	samplers       []Handle
	uniformBuffers []bufferRangeBinding
	storageBuffers []bufferRangeBinding
	indirectBuffer Handle
}

func newBindingTable(limits metadata.DeviceLimits) bindingTable {
	return bindingTable{
		textures:       make([]Handle, limits.MaxTextureSlots),
		samplers:       make([]Handle, limits.MaxSamplerSlots),
		uniformBuffers: make([]bufferRangeBinding, limits.MaxUniformBufferSlots),
		storageBuffers: make([]bufferRangeBinding, limits.MaxStorageBufferSlots),
	}
}

// BindPipeline makes the pipeline current. For a graphics pipeline this
// replays the program plus all four fixed-function blocks as separate
// native writes; resource binding slots are left untouched.
func (d *Device) BindPipeline(h Handle) error {
	entry, err := d.registry.resolve(h, ResourceKindPipeline)
	if err != nil {
		return d.validationFailed(err)
	}
	res := entry.payload.(*pipelineResource)

	d.backend.UseProgram(res.program)
	if !res.compute {
		d.backend.ApplyInputAssembly(res.inputAssembly)
		d.backend.ApplyRasterization(res.rasterization)
		d.backend.ApplyDepthStencil(res.depthStencil)
		d.backend.ApplyColorBlend(res.colorBlend)
	}
	d.table.pipeline = h
	return nil
}

// BindVertexLayout makes the vertex layout current. The buffers previously
// bound to the layout's slots become active with it.
func (d *Device) BindVertexLayout(h Handle) error {
	entry, err := d.registry.resolve(h, ResourceKindVertexLayout)
	if err != nil {
		return d.validationFailed(err)
	}
	d.backend.BindVertexLayout(entry.native)
	d.table.vertexLayout = h
	return nil
}

// BindVertexBuffers binds buffer regions to consecutive vertex buffer
// slots of a layout, starting at first. Slots outside the given range keep
// their bindings. A nil buffer clears its slot. The whole list is validated
// before the first slot is written.
func (d *Device) BindVertexBuffers(layout Handle, first uint32, views []VertexBufferView) error {
	layoutEntry, err := d.registry.resolve(layout, ResourceKindVertexLayout)
	if err != nil {
		return d.validationFailed(err)
	}
	if err := d.checkSlotRange(first, len(views), d.limits.MaxVertexBuffers, "vertex buffer"); err != nil {
		return err
	}
	res := layoutEntry.payload.(*vertexLayoutResource)

	natives := make([]uint32, len(views))
	bindings := make([]vertexBufferBinding, len(views))
	for i, view := range views {
		if view.Buffer.IsNil() {
			continue
		}
		bufEntry, err := d.registry.resolve(view.Buffer, ResourceKindBuffer)
		if err != nil {
			return d.validationFailed(err)
		}
		buf := bufEntry.payload.(*bufferResource)
		if !buf.usage.Has(metadata.BufferUsageVertex) {
			return d.validationFailed(fmt.Errorf("%w: %s lacks vertex usage", ErrUsageViolation, view.Buffer))
		}
		if view.Offset >= buf.size {
			return d.validationFailed(fmt.Errorf("%w: vertex offset %d in buffer of size %d",
				ErrOutOfBounds, view.Offset, buf.size))
		}
		natives[i] = bufEntry.native
		bindings[i] = vertexBufferBinding{buffer: view.Buffer, offset: view.Offset, stride: view.Stride}
	}
	for i := range views {
		slot := first + uint32(i)
		res.buffers[slot] = bindings[i]
		d.backend.BindVertexBuffer(layoutEntry.native, slot, natives[i], bindings[i].offset, bindings[i].stride)
	}
	return nil
}

// BindIndexBuffer attaches an index buffer to a layout. A nil buffer
// detaches the current one.
func (d *Device) BindIndexBuffer(layout, buffer Handle) error {
	layoutEntry, err := d.registry.resolve(layout, ResourceKindVertexLayout)
	if err != nil {
		return d.validationFailed(err)
	}
	res := layoutEntry.payload.(*vertexLayoutResource)

	if buffer.IsNil() {
		res.indexBuffer = NilHandle
		d.backend.BindIndexBuffer(layoutEntry.native, 0)
		return nil
	}
	bufEntry, err := d.registry.resolve(buffer, ResourceKindBuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	if !bufEntry.payload.(*bufferResource).usage.Has(metadata.BufferUsageIndex) {
		return d.validationFailed(fmt.Errorf("%w: %s lacks index usage", ErrUsageViolation, buffer))
	}
	res.indexBuffer = buffer
	d.backend.BindIndexBuffer(layoutEntry.native, bufEntry.native)
	return nil
}

// BindTextures binds images to consecutive texture slots starting at
// first. One native write is issued per slot; slots outside the range keep
// their bindings. A nil handle clears its slot. The whole list is validated
// before the first slot is written, so an error leaves every slot as it was.
func (d *Device) BindTextures(first uint32, images []Handle) error {
	if err := d.checkSlotRange(first, len(images), d.limits.MaxTextureSlots, "texture"); err != nil {
		return err
	}
	natives := make([]uint32, len(images))
	for i, img := range images {
		if img.IsNil() {
			continue
		}
		entry, err := d.registry.resolve(img, ResourceKindImage)
		if err != nil {
			return d.validationFailed(err)
		}
		if !entry.payload.(*imageResource).desc.Usage.Has(metadata.ImageUsageSampled) {
			return d.validationFailed(fmt.Errorf("%w: %s lacks sampled usage", ErrUsageViolation, img))
		}
		natives[i] = entry.native
	}
	for i, img := range images {
		slot := first + uint32(i)
		if img.IsNil() {
			img = NilHandle
		}
		d.table.textures[slot] = img
		d.backend.BindTexture(slot, natives[i])
	}
	return nil
}

// BindSamplers binds samplers to consecutive sampler slots starting at
// first. A nil handle clears its slot. The whole list is validated before
// the first slot is written.
func (d *Device) BindSamplers(first uint32, samplers []Handle) error {
	if err := d.checkSlotRange(first, len(samplers), d.limits.MaxSamplerSlots, "sampler"); err != nil {
		return err
	}
	natives := make([]uint32, len(samplers))
	for i, s := range samplers {
		if s.IsNil() {
			continue
		}
		entry, err := d.registry.resolve(s, ResourceKindSampler)
		if err != nil {
			return d.validationFailed(err)
		}
		natives[i] = entry.native
	}
	for i, s := range samplers {
		slot := first + uint32(i)
		if s.IsNil() {
			s = NilHandle
		}
		d.table.samplers[slot] = s
		d.backend.BindSampler(slot, natives[i])
	}
	return nil
}

// BindUniformBuffers binds buffer ranges to consecutive uniform buffer
// slots starting at first. Offsets must honor the device's uniform buffer
// offset alignment.
func (d *Device) BindUniformBuffers(first uint32, ranges []BufferRange) error {
	return d.bindBufferRanges(first, ranges, d.table.uniformBuffers, d.limits.MaxUniformBufferSlots,
		metadata.BufferUsageUniform, d.limits.UniformBufferOffsetAlignment, "uniform",
		d.backend.BindUniformBuffer)
}

// BindStorageBuffers binds buffer ranges to consecutive storage buffer
// slots starting at first. Offsets must honor the device's storage buffer
// offset alignment.
func (d *Device) BindStorageBuffers(first uint32, ranges []BufferRange) error {
	return d.bindBufferRanges(first, ranges, d.table.storageBuffers, d.limits.MaxStorageBufferSlots,
		metadata.BufferUsageStorage, d.limits.StorageBufferOffsetAlignment, "storage",
		d.backend.BindStorageBuffer)
}

func (d *Device) bindBufferRanges(first uint32, ranges []BufferRange, slots []bufferRangeBinding,
	limit uint32, usage metadata.BufferUsage, alignment uint64, kind string,
	bind func(slot, buffer uint32, offset, size uint64)) error {

	if err := d.checkSlotRange(first, len(ranges), limit, kind+" buffer"); err != nil {
		return err
	}
	natives := make([]uint32, len(ranges))
	resolved := make([]bufferRangeBinding, len(ranges))
	for i, r := range ranges {
		if r.Buffer.IsNil() {
			continue
		}
		entry, err := d.registry.resolve(r.Buffer, ResourceKindBuffer)
		if err != nil {
			return d.validationFailed(err)
		}
		buf := entry.payload.(*bufferResource)
		if !buf.usage.Has(usage) {
			return d.validationFailed(fmt.Errorf("%w: %s lacks %s usage", ErrUsageViolation, r.Buffer, kind))
		}
		if alignment > 0 && r.Offset%alignment != 0 {
			return d.validationFailed(fmt.Errorf("%w: %s offset %d not aligned to %d",
				ErrOutOfBounds, kind, r.Offset, alignment))
		}
		size := r.Size
		if size == 0 {
			if r.Offset >= buf.size {
				return d.validationFailed(fmt.Errorf("%w: %s offset %d in buffer of size %d",
					ErrOutOfBounds, kind, r.Offset, buf.size))
			}
			size = buf.size - r.Offset
		}
		if err := checkBufferRange(buf, r.Offset, size); err != nil {
			return d.validationFailed(err)
		}
		natives[i] = entry.native
		resolved[i] = bufferRangeBinding{buffer: r.Buffer, offset: r.Offset, size: size}
	}
	for i := range ranges {
		slot := first + uint32(i)
		slots[slot] = resolved[i]
		bind(slot, natives[i], resolved[i].offset, resolved[i].size)
	}
	return nil
}

// BindFramebuffer makes a framebuffer the current draw target.
func (d *Device) BindFramebuffer(h Handle) error {
	entry, err := d.registry.resolve(h, ResourceKindFramebuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	d.backend.BindFramebuffer(entry.native)
	d.table.framebuffer = h
	return nil
}

func (d *Device) checkSlotRange(first uint32, count int, limit uint32, kind string) error {
	if uint64(first)+uint64(count) > uint64(limit) {
		return d.validationFailed(fmt.Errorf("%w: %s slots [%d, %d) of %d",
			ErrSlotOutOfRange, kind, first, uint64(first)+uint64(count), limit))
	}
	return nil
}

// Binding state accessors. These read the slot table only; they never
// touch the native state.

// BoundPipeline returns the currently bound pipeline, or the nil handle.
func (d *Device) BoundPipeline() Handle { return d.table.pipeline }

// BoundVertexLayout returns the currently bound vertex layout, or the nil
// handle.
func (d *Device) BoundVertexLayout() Handle { return d.table.vertexLayout }

// BoundFramebuffer returns the current draw target.
func (d *Device) BoundFramebuffer() Handle { return d.table.framebuffer }

// BoundTexture returns the image bound to a texture slot, or the nil
// handle when the slot is empty.
func (d *Device) BoundTexture(slot uint32) (Handle, error) {
	if slot >= d.limits.MaxTextureSlots {
		return NilHandle, d.validationFailed(fmt.Errorf("%w: texture slot %d of %d",
			ErrSlotOutOfRange, slot, d.limits.MaxTextureSlots))
	}
	return d.table.textures[slot], nil
}

// BoundSampler returns the sampler bound to a sampler slot, or the nil
// handle when the slot is empty.
func (d *Device) BoundSampler(slot uint32) (Handle, error) {
	if slot >= d.limits.MaxSamplerSlots {
		return NilHandle, d.validationFailed(fmt.Errorf("%w: sampler slot %d of %d",
			ErrSlotOutOfRange, slot, d.limits.MaxSamplerSlots))
	}
	return d.table.samplers[slot], nil
}

// BoundUniformBuffer returns the range bound to a uniform buffer slot.
func (d *Device) BoundUniformBuffer(slot uint32) (BufferRange, error) {
	if slot >= d.limits.MaxUniformBufferSlots {
		return BufferRange{}, d.validationFailed(fmt.Errorf("%w: uniform buffer slot %d of %d",
			ErrSlotOutOfRange, slot, d.limits.MaxUniformBufferSlots))
	}
	b := d.table.uniformBuffers[slot]
	return BufferRange{Buffer: b.buffer, Offset: b.offset, Size: b.size}, nil
}

// BoundStorageBuffer returns the range bound to a storage buffer slot.
func (d *Device) BoundStorageBuffer(slot uint32) (BufferRange, error) {
	if slot >= d.limits.MaxStorageBufferSlots {
		return BufferRange{}, d.validationFailed(fmt.Errorf("%w: storage buffer slot %d of %d",
			ErrSlotOutOfRange, slot, d.limits.MaxStorageBufferSlots))
	}
	b := d.table.storageBuffers[slot]
	return BufferRange{Buffer: b.buffer, Offset: b.offset, Size: b.size}, nil
}

// evictBuffer clears every slot that refers to a released buffer, issuing
// the matching native unbinds.
func (d *Device) evictBuffer(h Handle) {
	for slot := range d.table.uniformBuffers {
		if d.table.uniformBuffers[slot].buffer == h {
			d.table.uniformBuffers[slot] = bufferRangeBinding{}
			d.backend.BindUniformBuffer(uint32(slot), 0, 0, 0)
		}
	}
	for slot := range d.table.storageBuffers {
		if d.table.storageBuffers[slot].buffer == h {
			d.table.storageBuffers[slot] = bufferRangeBinding{}
			d.backend.BindStorageBuffer(uint32(slot), 0, 0, 0)
		}
	}
	if d.table.indirectBuffer == h {
		d.table.indirectBuffer = NilHandle
		d.backend.BindDrawIndirectBuffer(0)
	}
	d.registry.forEach(ResourceKindVertexLayout, func(entry *resourceEntry) {
		res := entry.payload.(*vertexLayoutResource)
		for slot := range res.buffers {
			if res.buffers[slot].buffer == h {
				res.buffers[slot] = vertexBufferBinding{}
				d.backend.BindVertexBuffer(entry.native, uint32(slot), 0, 0, 0)
			}
		}
		if res.indexBuffer == h {
			res.indexBuffer = NilHandle
			d.backend.BindIndexBuffer(entry.native, 0)
		}
	})
}

// evictImage clears every texture slot that refers to a released image.
func (d *Device) evictImage(h Handle) {
	for slot := range d.table.textures {
		if d.table.textures[slot] == h {
			d.table.textures[slot] = NilHandle
			d.backend.BindTexture(uint32(slot), 0)
		}
	}
}

// evictSampler clears every sampler slot that refers to a released sampler.
func (d *Device) evictSampler(h Handle) {
	for slot := range d.table.samplers {
		if d.table.samplers[slot] == h {
			d.table.samplers[slot] = NilHandle
			d.backend.BindSampler(uint32(slot), 0)
		}
	}
}
