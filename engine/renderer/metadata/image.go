package metadata

/** @brief Image dimensionality. Layers and samples do not change the kind. */
type ImageKind int

const (
	ImageKind1D ImageKind = iota
	ImageKind2D
	ImageKind3D
	ImageKindCube
)

/** @brief Usage flags fixed at image creation. */
type ImageUsage uint32

const (
	ImageUsageSampled ImageUsage = 1 << iota
	ImageUsageStorage
	ImageUsageColorAttachment
	ImageUsageDepthStencilAttachment
	ImageUsageTransferSrc
	ImageUsageTransferDst
)

func (u ImageUsage) Has(flag ImageUsage) bool {
	return u&flag == flag
}

/** @brief Creation-time description of an image resource. */
type ImageDesc struct {
	Kind      ImageKind
	Width     uint32
	Height    uint32
	Depth     uint32
	Layers    uint32
	Samples   uint32
	MipLevels uint32
	Format    Format
	Usage     ImageUsage
}

// Extent returns the level zero extent of the image.
func (d ImageDesc) Extent() Extent {
	return Extent{Width: d.Width, Height: d.Height, Depth: d.Depth}
}
