package metadata

/** @brief Attachment points of a framebuffer. */
type AttachmentPoint int

const (
	AttachmentPointColor0 AttachmentPoint = iota
	AttachmentPointColor1
	AttachmentPointColor2
	AttachmentPointColor3
	AttachmentPointDepth
	AttachmentPointStencil
	AttachmentPointDepthStencil
)

// IsColor reports whether the attachment point is a color target.
func (p AttachmentPoint) IsColor() bool {
	return p >= AttachmentPointColor0 && p <= AttachmentPointColor3
}

// ColorIndex returns the color target index for color attachment points.
func (p AttachmentPoint) ColorIndex() int {
	return int(p - AttachmentPointColor0)
}

/** @brief Kind of value a clear writes into an attachment. */
type ClearValueKind int

const (
	ClearValueKindColorFloat ClearValueKind = iota
	ClearValueKindColorInt
	ClearValueKindColorUint
	ClearValueKindDepth
	ClearValueKindStencil
	ClearValueKindDepthStencil
)

/** @brief A clear value for one attachment. */
type ClearValue struct {
	Kind       ClearValueKind
	ColorFloat [4]float32
	ColorInt   [4]int32
	ColorUint  [4]uint32
	Depth      float32
	Stencil    int32
}

// ClearColor builds a float color clear value.
func ClearColor(r, g, b, a float32) ClearValue {
	return ClearValue{Kind: ClearValueKindColorFloat, ColorFloat: [4]float32{r, g, b, a}}
}

// ClearDepth builds a depth clear value.
func ClearDepth(depth float32) ClearValue {
	return ClearValue{Kind: ClearValueKindDepth, Depth: depth}
}

// ClearDepthStencil builds a combined depth and stencil clear value.
func ClearDepthStencil(depth float32, stencil int32) ClearValue {
	return ClearValue{Kind: ClearValueKindDepthStencil, Depth: depth, Stencil: stencil}
}
