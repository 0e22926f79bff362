package opengl

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/spaghettifunk/ignis/engine/renderer"
	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

func toInternalFormat(format metadata.Format) uint32 {
	switch format {
	case metadata.FormatR8Unorm:
		return gl.R8
	case metadata.FormatR8G8Unorm:
		return gl.RG8
	case metadata.FormatR8G8B8A8Unorm:
		return gl.RGBA8
	case metadata.FormatR8G8B8A8Srgb:
		return gl.SRGB8_ALPHA8
	case metadata.FormatR16G16Float:
		return gl.RG16F
	case metadata.FormatR16G16B16Float:
		return gl.RGB16F
	case metadata.FormatR16G16B16A16Float:
		return gl.RGBA16F
	case metadata.FormatR32Float:
		return gl.R32F
	case metadata.FormatR32Uint:
		return gl.R32UI
	case metadata.FormatD32Float:
		return gl.DEPTH_COMPONENT32F
	case metadata.FormatD24UnormS8Uint:
		return gl.DEPTH24_STENCIL8
	}
	return 0
}

// toTransferFormat returns the pixel format and type used for buffer to
// image transfers of the given texel format.
func toTransferFormat(format metadata.Format) (uint32, uint32) {
	switch format {
	case metadata.FormatR8Unorm:
		return gl.RED, gl.UNSIGNED_BYTE
	case metadata.FormatR8G8Unorm:
		return gl.RG, gl.UNSIGNED_BYTE
	case metadata.FormatR8G8B8A8Unorm, metadata.FormatR8G8B8A8Srgb:
		return gl.RGBA, gl.UNSIGNED_BYTE
	case metadata.FormatR16G16Float:
		return gl.RG, gl.HALF_FLOAT
	case metadata.FormatR16G16B16Float:
		return gl.RGB, gl.HALF_FLOAT
	case metadata.FormatR16G16B16A16Float:
		return gl.RGBA, gl.HALF_FLOAT
	case metadata.FormatR32Float:
		return gl.RED, gl.FLOAT
	case metadata.FormatR32Uint:
		return gl.RED_INTEGER, gl.UNSIGNED_INT
	case metadata.FormatD32Float:
		return gl.DEPTH_COMPONENT, gl.FLOAT
	case metadata.FormatD24UnormS8Uint:
		return gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8
	}
	return 0, 0
}

func toTextureTarget(desc metadata.ImageDesc) uint32 {
	switch desc.Kind {
	case metadata.ImageKind1D:
		if desc.Layers > 1 {
			return gl.TEXTURE_1D_ARRAY
		}
		return gl.TEXTURE_1D
	case metadata.ImageKind3D:
		return gl.TEXTURE_3D
	case metadata.ImageKindCube:
		if desc.Layers > 1 {
			return gl.TEXTURE_CUBE_MAP_ARRAY
		}
		return gl.TEXTURE_CUBE_MAP
	default:
		switch {
		case desc.Samples > 1 && desc.Layers > 1:
			return gl.TEXTURE_2D_MULTISAMPLE_ARRAY
		case desc.Samples > 1:
			return gl.TEXTURE_2D_MULTISAMPLE
		case desc.Layers > 1:
			return gl.TEXTURE_2D_ARRAY
		}
		return gl.TEXTURE_2D
	}
}

func toShaderStage(stage metadata.ShaderStage) uint32 {
	switch stage {
	case metadata.ShaderStageVertex:
		return gl.VERTEX_SHADER
	case metadata.ShaderStageFragment:
		return gl.FRAGMENT_SHADER
	case metadata.ShaderStageCompute:
		return gl.COMPUTE_SHADER
	case metadata.ShaderStageMesh:
		return glMeshShaderNV
	case metadata.ShaderStageTask:
		return glTaskShaderNV
	}
	return 0
}

// Mesh and task stages come from GL_NV_mesh_shader; the core bindings
// carry no constants for them.
const (
	glMeshShaderNV = 0x9559
	glTaskShaderNV = 0x955A
)

func toTopology(topology metadata.PrimitiveTopology) uint32 {
	switch topology {
	case metadata.PrimitiveTopologyPoints:
		return gl.POINTS
	case metadata.PrimitiveTopologyLines:
		return gl.LINES
	case metadata.PrimitiveTopologyLineStrip:
		return gl.LINE_STRIP
	case metadata.PrimitiveTopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	case metadata.PrimitiveTopologyTriangleFan:
		return gl.TRIANGLE_FAN
	}
	return gl.TRIANGLES
}

func toIndexType(t metadata.IndexType) uint32 {
	if t == metadata.IndexTypeU16 {
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_INT
}

func toCompareOp(op metadata.CompareOp) uint32 {
	switch op {
	case metadata.CompareOpNever:
		return gl.NEVER
	case metadata.CompareOpLess:
		return gl.LESS
	case metadata.CompareOpEqual:
		return gl.EQUAL
	case metadata.CompareOpLessEqual:
		return gl.LEQUAL
	case metadata.CompareOpGreater:
		return gl.GREATER
	case metadata.CompareOpNotEqual:
		return gl.NOTEQUAL
	case metadata.CompareOpGreaterEqual:
		return gl.GEQUAL
	}
	return gl.ALWAYS
}

func toBlendFactor(factor metadata.BlendFactor) uint32 {
	switch factor {
	case metadata.BlendFactorZero:
		return gl.ZERO
	case metadata.BlendFactorSrcColor:
		return gl.SRC_COLOR
	case metadata.BlendFactorOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case metadata.BlendFactorDstColor:
		return gl.DST_COLOR
	case metadata.BlendFactorOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case metadata.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case metadata.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case metadata.BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case metadata.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	}
	return gl.ONE
}

func toBlendOp(op metadata.BlendOp) uint32 {
	switch op {
	case metadata.BlendOpSubtract:
		return gl.FUNC_SUBTRACT
	case metadata.BlendOpReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case metadata.BlendOpMin:
		return gl.MIN
	case metadata.BlendOpMax:
		return gl.MAX
	}
	return gl.FUNC_ADD
}

func toStencilOp(op metadata.StencilOp) uint32 {
	switch op {
	case metadata.StencilOpZero:
		return gl.ZERO
	case metadata.StencilOpReplace:
		return gl.REPLACE
	case metadata.StencilOpIncrementClamp:
		return gl.INCR
	case metadata.StencilOpDecrementClamp:
		return gl.DECR
	case metadata.StencilOpInvert:
		return gl.INVERT
	case metadata.StencilOpIncrementWrap:
		return gl.INCR_WRAP
	case metadata.StencilOpDecrementWrap:
		return gl.DECR_WRAP
	}
	return gl.KEEP
}

func toPolygonMode(mode metadata.PolygonMode) uint32 {
	switch mode {
	case metadata.PolygonModeLine:
		return gl.LINE
	case metadata.PolygonModePoint:
		return gl.POINT
	}
	return gl.FILL
}

func toCullFace(mode metadata.FaceCullMode) uint32 {
	switch mode {
	case metadata.FaceCullModeFront:
		return gl.FRONT
	case metadata.FaceCullModeFrontAndBack:
		return gl.FRONT_AND_BACK
	}
	return gl.BACK
}

func toFrontFace(face metadata.FrontFace) uint32 {
	if face == metadata.FrontFaceClockwise {
		return gl.CW
	}
	return gl.CCW
}

func toWrapMode(mode metadata.WrapMode) int32 {
	switch mode {
	case metadata.WrapModeClampToEdge:
		return gl.CLAMP_TO_EDGE
	case metadata.WrapModeClampToBorder:
		return gl.CLAMP_TO_BORDER
	case metadata.WrapModeMirroredRepeat:
		return gl.MIRRORED_REPEAT
	}
	return gl.REPEAT
}

func toMinFilter(min metadata.FilterMode, mip *metadata.FilterMode) int32 {
	if mip == nil {
		if min == metadata.FilterModeNearest {
			return gl.NEAREST
		}
		return gl.LINEAR
	}
	switch {
	case min == metadata.FilterModeNearest && *mip == metadata.FilterModeNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case min == metadata.FilterModeNearest:
		return gl.NEAREST_MIPMAP_LINEAR
	case *mip == metadata.FilterModeNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	}
	return gl.LINEAR_MIPMAP_LINEAR
}

func toMagFilter(mag metadata.FilterMode) int32 {
	if mag == metadata.FilterModeNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func toAttachmentEnum(point metadata.AttachmentPoint) uint32 {
	switch point {
	case metadata.AttachmentPointDepth:
		return gl.DEPTH_ATTACHMENT
	case metadata.AttachmentPointStencil:
		return gl.STENCIL_ATTACHMENT
	case metadata.AttachmentPointDepthStencil:
		return gl.DEPTH_STENCIL_ATTACHMENT
	}
	return gl.COLOR_ATTACHMENT0 + uint32(point.ColorIndex())
}

func toQueryTarget(kind metadata.QueryKind) uint32 {
	switch kind {
	case metadata.QueryKindOcclusion:
		return gl.ANY_SAMPLES_PASSED
	case metadata.QueryKindOcclusionPrecise:
		return gl.SAMPLES_PASSED
	case metadata.QueryKindPrimitivesGenerated:
		return gl.PRIMITIVES_GENERATED
	case metadata.QueryKindTimestamp:
		return gl.TIMESTAMP
	}
	return gl.TIME_ELAPSED
}

func toObjectIdentifier(kind renderer.ResourceKind) uint32 {
	switch kind {
	case renderer.ResourceKindBuffer:
		return gl.BUFFER
	case renderer.ResourceKindImage:
		return gl.TEXTURE
	case renderer.ResourceKindSampler:
		return gl.SAMPLER
	case renderer.ResourceKindFramebuffer:
		return gl.FRAMEBUFFER
	case renderer.ResourceKindVertexLayout:
		return gl.VERTEX_ARRAY
	case renderer.ResourceKindShader:
		return gl.SHADER
	case renderer.ResourceKindPipeline:
		return gl.PROGRAM
	case renderer.ResourceKindQuery:
		return gl.QUERY
	}
	return gl.BUFFER
}

func toBarrierBits(mask metadata.BarrierMask) uint32 {
	if mask == metadata.BarrierAll {
		return gl.ALL_BARRIER_BITS
	}
	var bits uint32
	set := func(flag metadata.BarrierMask, bit uint32) {
		if mask&flag != 0 {
			bits |= bit
		}
	}
	set(metadata.BarrierVertexAttributeRead, gl.VERTEX_ATTRIB_ARRAY_BARRIER_BIT)
	set(metadata.BarrierIndexRead, gl.ELEMENT_ARRAY_BARRIER_BIT)
	set(metadata.BarrierUniformRead, gl.UNIFORM_BARRIER_BIT)
	set(metadata.BarrierSampledImageRead, gl.TEXTURE_FETCH_BARRIER_BIT)
	set(metadata.BarrierStorageImageRW, gl.SHADER_IMAGE_ACCESS_BARRIER_BIT)
	set(metadata.BarrierIndirectCommandRead, gl.COMMAND_BARRIER_BIT)
	set(metadata.BarrierBufferTransferRW, gl.BUFFER_UPDATE_BARRIER_BIT)
	set(metadata.BarrierImageTransferRW, gl.TEXTURE_UPDATE_BARRIER_BIT)
	set(metadata.BarrierFramebufferRW, gl.FRAMEBUFFER_BARRIER_BIT)
	set(metadata.BarrierStorageBufferRW, gl.SHADER_STORAGE_BARRIER_BIT)
	return bits
}

// toVertexAttribFormat splits a vertex format into the component count,
// scalar type and normalization used by the attrib format calls.
func toVertexAttribFormat(format metadata.VertexFormat) (size int32, xtype uint32, normalized bool) {
	switch format {
	case metadata.VertexFormatX8Int:
		return 1, gl.BYTE, false
	case metadata.VertexFormatX8Uint:
		return 1, gl.UNSIGNED_BYTE, false
	case metadata.VertexFormatX8Unorm:
		return 1, gl.UNSIGNED_BYTE, true
	case metadata.VertexFormatXy8Unorm:
		return 2, gl.UNSIGNED_BYTE, true
	case metadata.VertexFormatXyzw8Unorm:
		return 4, gl.UNSIGNED_BYTE, true
	case metadata.VertexFormatX16Int:
		return 1, gl.SHORT, false
	case metadata.VertexFormatX16Uint:
		return 1, gl.UNSIGNED_SHORT, false
	case metadata.VertexFormatXy16Float:
		return 2, gl.HALF_FLOAT, false
	case metadata.VertexFormatX32Int:
		return 1, gl.INT, false
	case metadata.VertexFormatX32Uint:
		return 1, gl.UNSIGNED_INT, false
	case metadata.VertexFormatX32Float:
		return 1, gl.FLOAT, false
	case metadata.VertexFormatXy32Float:
		return 2, gl.FLOAT, false
	case metadata.VertexFormatXyz32Float:
		return 3, gl.FLOAT, false
	case metadata.VertexFormatXyzw32Float:
		return 4, gl.FLOAT, false
	case metadata.VertexFormatX64Float:
		return 1, gl.DOUBLE, false
	}
	return 0, 0, false
}

// toVertexInput maps a reflected attribute type to the frontend's input
// description. The second return is false for types outside the supported
// set.
func toVertexInput(xtype uint32) (metadata.VertexBaseType, uint32, bool) {
	switch xtype {
	case gl.FLOAT:
		return metadata.VertexBaseTypeFloat, 1, true
	case gl.FLOAT_VEC2:
		return metadata.VertexBaseTypeFloat, 2, true
	case gl.FLOAT_VEC3:
		return metadata.VertexBaseTypeFloat, 3, true
	case gl.FLOAT_VEC4:
		return metadata.VertexBaseTypeFloat, 4, true
	case gl.INT, gl.UNSIGNED_INT:
		return metadata.VertexBaseTypeInt, 1, true
	case gl.INT_VEC2, gl.UNSIGNED_INT_VEC2:
		return metadata.VertexBaseTypeInt, 2, true
	case gl.INT_VEC3, gl.UNSIGNED_INT_VEC3:
		return metadata.VertexBaseTypeInt, 3, true
	case gl.INT_VEC4, gl.UNSIGNED_INT_VEC4:
		return metadata.VertexBaseTypeInt, 4, true
	case gl.DOUBLE:
		return metadata.VertexBaseTypeDouble, 1, true
	case gl.DOUBLE_VEC2:
		return metadata.VertexBaseTypeDouble, 2, true
	case gl.DOUBLE_VEC3:
		return metadata.VertexBaseTypeDouble, 3, true
	case gl.DOUBLE_VEC4:
		return metadata.VertexBaseTypeDouble, 4, true
	}
	return 0, 0, false
}
