package renderer

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

// call is one recorded native invocation.
type call struct {
	name string
	args []any
}

func (c call) String() string { return fmt.Sprintf("%s%v", c.name, c.args) }

// fakeBackend records every native call and keeps real storage for buffers
// so transfer round trips can be asserted.
type fakeBackend struct {
	limits metadata.DeviceLimits
	calls  []call
	nextID uint32

	// Error injected into the named creation method.
	failCreate map[string]error

	buffers map[uint32][]byte

	// Vertex inputs reported by the next LinkProgram.
	linkInputs []metadata.VertexInput
	linkErr    error

	// QueryResultAvailable reports false this many times before true.
	queryDelay int
	queryValue uint64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		limits: metadata.DeviceLimits{
			MaxImageSize2D:               4096,
			MaxImageSize3D:               2048,
			MaxImageLayers:               256,
			MaxBufferSize:                1 << 20,
			MaxVertexBuffers:             8,
			MaxVertexAttributes:          16,
			MaxTextureSlots:              16,
			MaxSamplerSlots:              16,
			MaxUniformBufferSlots:        12,
			MaxStorageBufferSlots:        8,
			MaxColorAttachments:          4,
			UniformBufferOffsetAlignment: 256,
			StorageBufferOffsetAlignment: 16,
			MaxComputeGroupCount:         [3]uint32{65535, 65535, 65535},
			MaxAnisotropy:                16,
		},
		failCreate: map[string]error{},
		buffers:    map[uint32][]byte{},
	}
}

func (f *fakeBackend) record(name string, args ...any) {
	f.calls = append(f.calls, call{name: name, args: args})
}

// named returns the recorded calls with the given name.
func (f *fakeBackend) named(name string) []call {
	var out []call
	for _, c := range f.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeBackend) reset() { f.calls = nil }

func (f *fakeBackend) create(name string) (uint32, error) {
	if err := f.failCreate[name]; err != nil {
		return 0, err
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeBackend) Limits() metadata.DeviceLimits { return f.limits }

func (f *fakeBackend) CreateBuffer(size uint64, usage metadata.BufferUsage) (uint32, error) {
	id, err := f.create("CreateBuffer")
	if err != nil {
		return 0, err
	}
	f.record("CreateBuffer", size, usage)
	f.buffers[id] = make([]byte, size)
	return id, nil
}

func (f *fakeBackend) DeleteBuffer(buffer uint32) {
	f.record("DeleteBuffer", buffer)
	delete(f.buffers, buffer)
}

func (f *fakeBackend) WriteBuffer(buffer uint32, offset uint64, data []byte) {
	f.record("WriteBuffer", buffer, offset, len(data))
	copy(f.buffers[buffer][offset:], data)
}

func (f *fakeBackend) ReadBuffer(buffer uint32, offset uint64, out []byte) {
	f.record("ReadBuffer", buffer, offset, len(out))
	copy(out, f.buffers[buffer][offset:])
}

func (f *fakeBackend) CopyBuffer(src, dst uint32, region metadata.BufferCopy) {
	f.record("CopyBuffer", src, dst, region)
	copy(f.buffers[dst][region.DstOffset:region.DstOffset+region.Size],
		f.buffers[src][region.SrcOffset:region.SrcOffset+region.Size])
}

func (f *fakeBackend) CreateImage(desc metadata.ImageDesc) (uint32, error) {
	id, err := f.create("CreateImage")
	if err != nil {
		return 0, err
	}
	f.record("CreateImage", desc)
	return id, nil
}

func (f *fakeBackend) DeleteImage(image uint32) { f.record("DeleteImage", image) }

func (f *fakeBackend) CopyBufferToImage(buffer, image uint32, desc metadata.ImageDesc, region metadata.BufferImageCopy) {
	f.record("CopyBufferToImage", buffer, image, region)
}

func (f *fakeBackend) CopyImageToBuffer(image, buffer uint32, desc metadata.ImageDesc, region metadata.BufferImageCopy) {
	f.record("CopyImageToBuffer", image, buffer, region)
}

func (f *fakeBackend) GenerateMipmaps(image uint32) { f.record("GenerateMipmaps", image) }

func (f *fakeBackend) CreateSampler(desc metadata.SamplerDesc) (uint32, error) {
	id, err := f.create("CreateSampler")
	if err != nil {
		return 0, err
	}
	f.record("CreateSampler", desc)
	return id, nil
}

func (f *fakeBackend) DeleteSampler(sampler uint32) { f.record("DeleteSampler", sampler) }

func (f *fakeBackend) CreateVertexLayout(attributes []metadata.VertexAttribute) (uint32, error) {
	id, err := f.create("CreateVertexLayout")
	if err != nil {
		return 0, err
	}
	f.record("CreateVertexLayout", len(attributes))
	return id, nil
}

func (f *fakeBackend) DeleteVertexLayout(layout uint32) { f.record("DeleteVertexLayout", layout) }

func (f *fakeBackend) CreateFramebuffer(attachments []NativeAttachment) (uint32, error) {
	id, err := f.create("CreateFramebuffer")
	if err != nil {
		return 0, err
	}
	f.record("CreateFramebuffer", len(attachments))
	return id, nil
}

func (f *fakeBackend) DeleteFramebuffer(framebuffer uint32) { f.record("DeleteFramebuffer", framebuffer) }

func (f *fakeBackend) CompileShader(stage metadata.ShaderStage, source []byte) (uint32, error) {
	id, err := f.create("CompileShader")
	if err != nil {
		return 0, err
	}
	f.record("CompileShader", stage)
	return id, nil
}

func (f *fakeBackend) DeleteShader(shader uint32) { f.record("DeleteShader", shader) }

func (f *fakeBackend) LinkProgram(shaders []uint32) (uint32, []metadata.VertexInput, error) {
	if f.linkErr != nil {
		return 0, nil, f.linkErr
	}
	f.nextID++
	f.record("LinkProgram", len(shaders))
	return f.nextID, f.linkInputs, nil
}

func (f *fakeBackend) DeleteProgram(program uint32) { f.record("DeleteProgram", program) }

func (f *fakeBackend) UseProgram(program uint32) { f.record("UseProgram", program) }

func (f *fakeBackend) ApplyInputAssembly(state metadata.InputAssemblyState) {
	f.record("ApplyInputAssembly", state)
}

func (f *fakeBackend) ApplyRasterization(state metadata.RasterizationState) {
	f.record("ApplyRasterization", state)
}

func (f *fakeBackend) ApplyDepthStencil(state metadata.DepthStencilState) {
	f.record("ApplyDepthStencil", state)
}

func (f *fakeBackend) ApplyColorBlend(state metadata.ColorBlendState) {
	f.record("ApplyColorBlend", state)
}

func (f *fakeBackend) BindVertexLayout(layout uint32) { f.record("BindVertexLayout", layout) }

func (f *fakeBackend) BindVertexBuffer(layout, slot, buffer uint32, offset uint64, stride uint32) {
	f.record("BindVertexBuffer", layout, slot, buffer, offset, stride)
}

func (f *fakeBackend) BindIndexBuffer(layout, buffer uint32) {
	f.record("BindIndexBuffer", layout, buffer)
}

func (f *fakeBackend) BindTexture(slot, image uint32) { f.record("BindTexture", slot, image) }

func (f *fakeBackend) BindSampler(slot, sampler uint32) { f.record("BindSampler", slot, sampler) }

func (f *fakeBackend) BindUniformBuffer(slot, buffer uint32, offset, size uint64) {
	f.record("BindUniformBuffer", slot, buffer, offset, size)
}

func (f *fakeBackend) BindStorageBuffer(slot, buffer uint32, offset, size uint64) {
	f.record("BindStorageBuffer", slot, buffer, offset, size)
}

func (f *fakeBackend) BindFramebuffer(framebuffer uint32) { f.record("BindFramebuffer", framebuffer) }

func (f *fakeBackend) BindDrawIndirectBuffer(buffer uint32) {
	f.record("BindDrawIndirectBuffer", buffer)
}

func (f *fakeBackend) SetViewport(first uint32, viewports []metadata.Viewport) {
	f.record("SetViewport", first, len(viewports))
}

func (f *fakeBackend) SetScissor(first uint32, regions []metadata.Region) {
	f.record("SetScissor", first, len(regions))
}

func (f *fakeBackend) Draw(topology metadata.PrimitiveTopology, firstVertex, vertexCount, firstInstance, instanceCount uint32) {
	f.record("Draw", topology, firstVertex, vertexCount, firstInstance, instanceCount)
}

func (f *fakeBackend) DrawIndexed(topology metadata.PrimitiveTopology, indexType metadata.IndexType, firstIndex, indexCount, firstInstance, instanceCount uint32, baseVertex int32) {
	f.record("DrawIndexed", topology, indexType, firstIndex, indexCount, firstInstance, instanceCount, baseVertex)
}

func (f *fakeBackend) DrawIndirect(topology metadata.PrimitiveTopology, offset uint64, drawCount, stride uint32) {
	f.record("DrawIndirect", topology, offset, drawCount, stride)
}

func (f *fakeBackend) DrawIndexedIndirect(topology metadata.PrimitiveTopology, indexType metadata.IndexType, offset uint64, drawCount, stride uint32) {
	f.record("DrawIndexedIndirect", topology, indexType, offset, drawCount, stride)
}

func (f *fakeBackend) Dispatch(groupsX, groupsY, groupsZ uint32) {
	f.record("Dispatch", groupsX, groupsY, groupsZ)
}

func (f *fakeBackend) ClearAttachment(framebuffer uint32, point metadata.AttachmentPoint, value metadata.ClearValue) {
	f.record("ClearAttachment", framebuffer, point, value.Kind)
}

func (f *fakeBackend) MemoryBarrier(mask metadata.BarrierMask) { f.record("MemoryBarrier", mask) }

func (f *fakeBackend) CreateQuery(kind metadata.QueryKind) (uint32, error) {
	id, err := f.create("CreateQuery")
	if err != nil {
		return 0, err
	}
	f.record("CreateQuery", kind)
	return id, nil
}

func (f *fakeBackend) DeleteQuery(query uint32) { f.record("DeleteQuery", query) }

func (f *fakeBackend) BeginQuery(query uint32, kind metadata.QueryKind) {
	f.record("BeginQuery", query, kind)
}

func (f *fakeBackend) EndQuery(kind metadata.QueryKind) { f.record("EndQuery", kind) }

func (f *fakeBackend) WriteTimestamp(query uint32) { f.record("WriteTimestamp", query) }

func (f *fakeBackend) QueryResultAvailable(query uint32) bool {
	if f.queryDelay > 0 {
		f.queryDelay--
		return false
	}
	return true
}

func (f *fakeBackend) QueryResult(query uint32) uint64 { return f.queryValue }

func (f *fakeBackend) PushDebugGroup(label string) { f.record("PushDebugGroup", label) }

func (f *fakeBackend) PopDebugGroup() { f.record("PopDebugGroup") }

func (f *fakeBackend) InsertDebugMarker(message string) { f.record("InsertDebugMarker", message) }

func (f *fakeBackend) LabelObject(kind ResourceKind, native uint32, label string) {
	f.record("LabelObject", kind, native, label)
}

func (f *fakeBackend) Shutdown() { f.record("Shutdown") }

var errNative = errors.New("native failure")
