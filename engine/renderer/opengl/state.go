package opengl

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/spaghettifunk/ignis/engine/renderer"
	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

func (b *Backend) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (b *Backend) ApplyInputAssembly(state metadata.InputAssemblyState) {
	if state.PrimitiveRestart != nil {
		gl.Enable(gl.PRIMITIVE_RESTART)
		gl.PrimitiveRestartIndex(*state.PrimitiveRestart)
	} else {
		gl.Disable(gl.PRIMITIVE_RESTART)
	}
}

func (b *Backend) ApplyRasterization(state metadata.RasterizationState) {
	enable(gl.DEPTH_CLAMP, state.DepthClamp)
	enable(gl.RASTERIZER_DISCARD, state.RasterizerDiscard)
	gl.PolygonMode(gl.FRONT_AND_BACK, toPolygonMode(state.PolygonMode))

	if state.CullMode == metadata.FaceCullModeNone {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(toCullFace(state.CullMode))
	}
	gl.FrontFace(toFrontFace(state.FrontFace))

	enable(gl.POLYGON_OFFSET_FILL, state.DepthBias)
	if state.DepthBias {
		gl.PolygonOffset(state.DepthBiasSlope, state.DepthBiasConstant)
	}
}

func (b *Backend) ApplyDepthStencil(state metadata.DepthStencilState) {
	enable(gl.DEPTH_TEST, state.DepthTest)
	if state.DepthTest {
		gl.DepthFunc(toCompareOp(state.DepthCompareOp))
	}
	gl.DepthMask(state.DepthWrite)

	enable(gl.STENCIL_TEST, state.StencilTest)
	if state.StencilTest {
		applyStencilFace(gl.FRONT, state.StencilFront)
		applyStencilFace(gl.BACK, state.StencilBack)
	}
}

func applyStencilFace(face uint32, state metadata.StencilFaceState) {
	gl.StencilOpSeparate(face, toStencilOp(state.Fail), toStencilOp(state.DepthFail), toStencilOp(state.Pass))
	gl.StencilFuncSeparate(face, toCompareOp(state.CompareOp), int32(state.Reference), state.CompareMask)
}

func (b *Backend) ApplyColorBlend(state metadata.ColorBlendState) {
	for i, attachment := range state.Attachments {
		buf := uint32(i)
		if !attachment.Enable {
			gl.Disablei(gl.BLEND, buf)
			continue
		}
		gl.Enablei(gl.BLEND, buf)
		gl.BlendFuncSeparatei(buf,
			toBlendFactor(attachment.Color.SrcFactor), toBlendFactor(attachment.Color.DstFactor),
			toBlendFactor(attachment.Alpha.SrcFactor), toBlendFactor(attachment.Alpha.DstFactor))
		gl.BlendEquationSeparatei(buf, toBlendOp(attachment.Color.Op), toBlendOp(attachment.Alpha.Op))
	}
}

func (b *Backend) BindVertexLayout(layout uint32) {
	gl.BindVertexArray(layout)
}

func (b *Backend) BindVertexBuffer(layout, slot, buffer uint32, offset uint64, stride uint32) {
	gl.VertexArrayVertexBuffer(layout, slot, buffer, int(offset), int32(stride))
}

func (b *Backend) BindIndexBuffer(layout, buffer uint32) {
	gl.VertexArrayElementBuffer(layout, buffer)
}

func (b *Backend) BindTexture(slot, image uint32) {
	gl.BindTextureUnit(slot, image)
}

func (b *Backend) BindSampler(slot, sampler uint32) {
	gl.BindSampler(slot, sampler)
}

func (b *Backend) BindUniformBuffer(slot, buffer uint32, offset, size uint64) {
	if buffer == 0 {
		gl.BindBufferBase(gl.UNIFORM_BUFFER, slot, 0)
		return
	}
	gl.BindBufferRange(gl.UNIFORM_BUFFER, slot, buffer, int(offset), int(size))
}

func (b *Backend) BindStorageBuffer(slot, buffer uint32, offset, size uint64) {
	if buffer == 0 {
		gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, slot, 0)
		return
	}
	gl.BindBufferRange(gl.SHADER_STORAGE_BUFFER, slot, buffer, int(offset), int(size))
}

func (b *Backend) BindFramebuffer(framebuffer uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
}

func (b *Backend) BindDrawIndirectBuffer(buffer uint32) {
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, buffer)
}

func (b *Backend) SetViewport(first uint32, viewports []metadata.Viewport) {
	for i, vp := range viewports {
		index := first + uint32(i)
		gl.ViewportIndexedf(index, vp.X, vp.Y, vp.W, vp.H)
		gl.DepthRangeIndexed(index, vp.Near, vp.Far)
	}
}

func (b *Backend) SetScissor(first uint32, regions []metadata.Region) {
	for i, r := range regions {
		gl.ScissorIndexed(first+uint32(i), r.X, r.Y, r.W, r.H)
	}
}

func (b *Backend) Draw(topology metadata.PrimitiveTopology, firstVertex, vertexCount, firstInstance, instanceCount uint32) {
	gl.DrawArraysInstancedBaseInstance(toTopology(topology),
		int32(firstVertex), int32(vertexCount), int32(instanceCount), firstInstance)
}

func (b *Backend) DrawIndexed(topology metadata.PrimitiveTopology, indexType metadata.IndexType,
	firstIndex, indexCount, firstInstance, instanceCount uint32, baseVertex int32) {
	gl.DrawElementsInstancedBaseVertexBaseInstance(toTopology(topology),
		int32(indexCount), toIndexType(indexType),
		gl.PtrOffset(int(firstIndex*indexType.Size())),
		int32(instanceCount), baseVertex, firstInstance)
}

func (b *Backend) DrawIndirect(topology metadata.PrimitiveTopology, offset uint64, drawCount, stride uint32) {
	gl.MultiDrawArraysIndirect(toTopology(topology), gl.PtrOffset(int(offset)),
		int32(drawCount), int32(stride))
}

func (b *Backend) DrawIndexedIndirect(topology metadata.PrimitiveTopology, indexType metadata.IndexType,
	offset uint64, drawCount, stride uint32) {
	gl.MultiDrawElementsIndirect(toTopology(topology), toIndexType(indexType),
		gl.PtrOffset(int(offset)), int32(drawCount), int32(stride))
}

func (b *Backend) Dispatch(groupsX, groupsY, groupsZ uint32) {
	gl.DispatchCompute(groupsX, groupsY, groupsZ)
}

func (b *Backend) ClearAttachment(framebuffer uint32, point metadata.AttachmentPoint, value metadata.ClearValue) {
	switch value.Kind {
	case metadata.ClearValueKindColorFloat:
		color := value.ColorFloat
		gl.ClearNamedFramebufferfv(framebuffer, gl.COLOR, int32(point.ColorIndex()), &color[0])
	case metadata.ClearValueKindColorInt:
		color := value.ColorInt
		gl.ClearNamedFramebufferiv(framebuffer, gl.COLOR, int32(point.ColorIndex()), &color[0])
	case metadata.ClearValueKindColorUint:
		color := value.ColorUint
		gl.ClearNamedFramebufferuiv(framebuffer, gl.COLOR, int32(point.ColorIndex()), &color[0])
	case metadata.ClearValueKindDepth:
		depth := value.Depth
		gl.ClearNamedFramebufferfv(framebuffer, gl.DEPTH, 0, &depth)
	case metadata.ClearValueKindStencil:
		stencil := value.Stencil
		gl.ClearNamedFramebufferiv(framebuffer, gl.STENCIL, 0, &stencil)
	case metadata.ClearValueKindDepthStencil:
		gl.ClearNamedFramebufferfi(framebuffer, gl.DEPTH_STENCIL, 0, value.Depth, value.Stencil)
	}
}

func (b *Backend) MemoryBarrier(mask metadata.BarrierMask) {
	gl.MemoryBarrier(toBarrierBits(mask))
}

func (b *Backend) CreateQuery(kind metadata.QueryKind) (uint32, error) {
	var id uint32
	gl.CreateQueries(toQueryTarget(kind), 1, &id)
	if err := popError("query"); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *Backend) DeleteQuery(query uint32) {
	gl.DeleteQueries(1, &query)
}

func (b *Backend) BeginQuery(query uint32, kind metadata.QueryKind) {
	gl.BeginQuery(toQueryTarget(kind), query)
}

func (b *Backend) EndQuery(kind metadata.QueryKind) {
	gl.EndQuery(toQueryTarget(kind))
}

func (b *Backend) WriteTimestamp(query uint32) {
	gl.QueryCounter(query, gl.TIMESTAMP)
}

func (b *Backend) QueryResultAvailable(query uint32) bool {
	var available uint32
	gl.GetQueryObjectuiv(query, gl.QUERY_RESULT_AVAILABLE, &available)
	return available == gl.TRUE
}

func (b *Backend) QueryResult(query uint32) uint64 {
	var result uint64
	gl.GetQueryObjectui64v(query, gl.QUERY_RESULT, &result)
	return result
}

func (b *Backend) PushDebugGroup(label string) {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 0, int32(len(label)), glString(label))
}

func (b *Backend) PopDebugGroup() {
	gl.PopDebugGroup()
}

func (b *Backend) InsertDebugMarker(message string) {
	gl.DebugMessageInsert(gl.DEBUG_SOURCE_APPLICATION, gl.DEBUG_TYPE_MARKER, 0,
		gl.DEBUG_SEVERITY_NOTIFICATION, int32(len(message)), glString(message))
}

func (b *Backend) LabelObject(kind renderer.ResourceKind, native uint32, label string) {
	gl.ObjectLabel(toObjectIdentifier(kind), native, int32(len(label)), glString(label))
}

func enable(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}
