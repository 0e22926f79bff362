package metadata

/** @brief Programmable stages a shader object can be compiled for. */
type ShaderStage int

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
	ShaderStageCompute
	ShaderStageMesh
	ShaderStageTask
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	case ShaderStageCompute:
		return "compute"
	case ShaderStageMesh:
		return "mesh"
	case ShaderStageTask:
		return "task"
	}
	return "unknown"
}

/** @brief How the input assembler builds primitives from vertex data. */
type PrimitiveTopology int

const (
	PrimitiveTopologyPoints PrimitiveTopology = iota
	PrimitiveTopologyLines
	PrimitiveTopologyLineStrip
	PrimitiveTopologyTriangles
	PrimitiveTopologyTriangleStrip
	PrimitiveTopologyTriangleFan
)

/** @brief Comparison function for depth, stencil and sampler compare ops. */
type CompareOp int

const (
	CompareOpNever CompareOp = iota
	CompareOpLess
	CompareOpEqual
	CompareOpLessEqual
	CompareOpGreater
	CompareOpNotEqual
	CompareOpGreaterEqual
	CompareOpAlways
)

/** @brief Determines face culling mode during rendering. */
type FaceCullMode int

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = iota
	/** @brief Only front faces are culled. */
	FaceCullModeFront
	/** @brief Only back faces are culled. */
	FaceCullModeBack
	/** @brief Both front and back faces are culled. */
	FaceCullModeFrontAndBack
)

/** @brief How polygons are rasterized. */
type PolygonMode int

const (
	PolygonModeFill PolygonMode = iota
	PolygonModeLine
	PolygonModePoint
)

/** @brief Winding order that identifies the front face of a triangle. */
type FrontFace int

const (
	FrontFaceCounterClockwise FrontFace = iota
	FrontFaceClockwise
)

/** @brief Blend coefficients. */
type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
)

/** @brief Blend equation operators. */
type BlendOp int

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

/** @brief Stencil actions. */
type StencilOp int

const (
	StencilOpKeep StencilOp = iota
	StencilOpZero
	StencilOpReplace
	StencilOpIncrementClamp
	StencilOpDecrementClamp
	StencilOpInvert
	StencilOpIncrementWrap
	StencilOpDecrementWrap
)

/** @brief Input assembler configuration. */
type InputAssemblyState struct {
	Topology PrimitiveTopology
	// Index value that restarts primitive assembly, or nil when disabled.
	PrimitiveRestart *uint32
}

/** @brief Rasterizer configuration. */
type RasterizationState struct {
	DepthClamp        bool
	RasterizerDiscard bool
	PolygonMode       PolygonMode
	CullMode          FaceCullMode
	FrontFace         FrontFace
	DepthBias         bool
	DepthBiasConstant float32
	DepthBiasSlope    float32
}

/** @brief Per-face stencil configuration. */
type StencilFaceState struct {
	Fail        StencilOp
	Pass        StencilOp
	DepthFail   StencilOp
	CompareOp   CompareOp
	CompareMask uint32
	Reference   uint32
}

// StencilFaceKeep is the pass-through stencil face configuration.
var StencilFaceKeep = StencilFaceState{
	Fail:        StencilOpKeep,
	Pass:        StencilOpKeep,
	DepthFail:   StencilOpKeep,
	CompareOp:   CompareOpAlways,
	CompareMask: ^uint32(0),
}

/** @brief Depth and stencil test configuration. */
type DepthStencilState struct {
	DepthTest      bool
	DepthWrite     bool
	DepthCompareOp CompareOp
	StencilTest    bool
	StencilFront   StencilFaceState
	StencilBack    StencilFaceState
}

/** @brief One blend equation per channel pair. */
type BlendChannel struct {
	SrcFactor BlendFactor
	DstFactor BlendFactor
	Op        BlendOp
}

/** @brief Blend configuration for a single color attachment. */
type ColorBlendAttachment struct {
	Enable bool
	Color  BlendChannel
	Alpha  BlendChannel
}

/** @brief Blend configuration for all color attachments. */
type ColorBlendState struct {
	Attachments []ColorBlendAttachment
}
