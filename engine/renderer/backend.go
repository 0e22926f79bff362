package renderer

import (
	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

// NativeAttachment pairs an attachment point with the native identifier of
// the image bound to it.
type NativeAttachment struct {
	Point metadata.AttachmentPoint
	Image uint32
}

// Backend is the native mutation surface the device translates into. One
// frontend call maps to one backend call per affected binding slot or state
// block; the backend performs no validation and no deduplication of its own.
//
// All methods are invoked from the goroutine that owns the device. Creation
// methods may fail when the native API reports an error; everything else is
// fire and forget.
type Backend interface {
	// Limits reports the immutable device limits captured at startup.
	Limits() metadata.DeviceLimits

	CreateBuffer(size uint64, usage metadata.BufferUsage) (uint32, error)
	DeleteBuffer(buffer uint32)
	WriteBuffer(buffer uint32, offset uint64, data []byte)
	ReadBuffer(buffer uint32, offset uint64, out []byte)
	CopyBuffer(src, dst uint32, region metadata.BufferCopy)

	CreateImage(desc metadata.ImageDesc) (uint32, error)
	DeleteImage(image uint32)
	CopyBufferToImage(buffer, image uint32, desc metadata.ImageDesc, region metadata.BufferImageCopy)
	CopyImageToBuffer(image, buffer uint32, desc metadata.ImageDesc, region metadata.BufferImageCopy)
	GenerateMipmaps(image uint32)

	CreateSampler(desc metadata.SamplerDesc) (uint32, error)
	DeleteSampler(sampler uint32)

	CreateVertexLayout(attributes []metadata.VertexAttribute) (uint32, error)
	DeleteVertexLayout(layout uint32)

	CreateFramebuffer(attachments []NativeAttachment) (uint32, error)
	DeleteFramebuffer(framebuffer uint32)

	CompileShader(stage metadata.ShaderStage, source []byte) (uint32, error)
	DeleteShader(shader uint32)
	// LinkProgram links the given shader objects and reflects the vertex
	// inputs consumed by the resulting program.
	LinkProgram(shaders []uint32) (uint32, []metadata.VertexInput, error)
	DeleteProgram(program uint32)

	UseProgram(program uint32)
	ApplyInputAssembly(state metadata.InputAssemblyState)
	ApplyRasterization(state metadata.RasterizationState)
	ApplyDepthStencil(state metadata.DepthStencilState)
	ApplyColorBlend(state metadata.ColorBlendState)

	BindVertexLayout(layout uint32)
	BindVertexBuffer(layout uint32, slot uint32, buffer uint32, offset uint64, stride uint32)
	BindIndexBuffer(layout uint32, buffer uint32)
	BindTexture(slot uint32, image uint32)
	BindSampler(slot uint32, sampler uint32)
	BindUniformBuffer(slot uint32, buffer uint32, offset, size uint64)
	BindStorageBuffer(slot uint32, buffer uint32, offset, size uint64)
	BindFramebuffer(framebuffer uint32)
	BindDrawIndirectBuffer(buffer uint32)

	SetViewport(first uint32, viewports []metadata.Viewport)
	SetScissor(first uint32, regions []metadata.Region)

	Draw(topology metadata.PrimitiveTopology, firstVertex, vertexCount, firstInstance, instanceCount uint32)
	DrawIndexed(topology metadata.PrimitiveTopology, indexType metadata.IndexType, firstIndex, indexCount, firstInstance, instanceCount uint32, baseVertex int32)
	DrawIndirect(topology metadata.PrimitiveTopology, offset uint64, drawCount, stride uint32)
	DrawIndexedIndirect(topology metadata.PrimitiveTopology, indexType metadata.IndexType, offset uint64, drawCount, stride uint32)
	Dispatch(groupsX, groupsY, groupsZ uint32)

	ClearAttachment(framebuffer uint32, point metadata.AttachmentPoint, value metadata.ClearValue)
	MemoryBarrier(mask metadata.BarrierMask)

	CreateQuery(kind metadata.QueryKind) (uint32, error)
	DeleteQuery(query uint32)
	BeginQuery(query uint32, kind metadata.QueryKind)
	EndQuery(kind metadata.QueryKind)
	WriteTimestamp(query uint32)
	QueryResultAvailable(query uint32) bool
	QueryResult(query uint32) uint64

	PushDebugGroup(label string)
	PopDebugGroup()
	InsertDebugMarker(message string)
	LabelObject(kind ResourceKind, native uint32, label string)

	Shutdown()
}
