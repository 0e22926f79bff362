package metadata

/** @brief Texel filtering mode. */
type FilterMode int

const (
	FilterModeNearest FilterMode = iota
	FilterModeLinear
)

/** @brief Addressing of texture coordinates outside [0, 1]. */
type WrapMode int

const (
	WrapModeRepeat WrapMode = iota
	WrapModeClampToEdge
	WrapModeClampToBorder
	WrapModeMirroredRepeat
)

/** @brief Creation-time description of a sampler object. */
type SamplerDesc struct {
	MinFilter FilterMode
	MagFilter FilterMode
	// Mip filtering between levels, or nil to sample the base level only.
	MipFilter *FilterMode
	WrapU     WrapMode
	WrapV     WrapMode
	WrapW     WrapMode
	// Anisotropic filtering samples; values below 1 mean disabled.
	MaxAnisotropy float32
	LODBias       float32
	MinLOD        float32
	MaxLOD        float32
	// Depth comparison for shadow samplers, or nil when disabled.
	Compare     *CompareOp
	BorderColor [4]float32
}
