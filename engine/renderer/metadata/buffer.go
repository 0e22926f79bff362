package metadata

/** @brief Usage flags fixed at buffer creation. */
type BufferUsage uint32

const (
	BufferUsageTransferSrc BufferUsage = 1 << iota
	BufferUsageTransferDst
	BufferUsageVertex
	BufferUsageIndex
	BufferUsageUniform
	BufferUsageStorage
	BufferUsageIndirect
	BufferUsageMapRead
	BufferUsageMapWrite
	BufferUsageDynamic
)

func (u BufferUsage) Has(flag BufferUsage) bool {
	return u&flag == flag
}

/** @brief Index element width for indexed draws. */
type IndexType int

const (
	IndexTypeU16 IndexType = iota
	IndexTypeU32
)

// Size returns the byte width of one index element.
func (t IndexType) Size() uint32 {
	if t == IndexTypeU16 {
		return 2
	}
	return 4
}

/** @brief A single region of a buffer to buffer copy. */
type BufferCopy struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

/** @brief A buffer region used for image transfer operations. */
type BufferImageCopy struct {
	// Offset in bytes from the start of the buffer.
	BufferOffset uint64
	// Texels per row in the buffer; 0 means tightly packed.
	BufferRowLength uint32
	// Mip level of the image subresource.
	MipLevel uint32
	// First array layer of the image subresource.
	BaseLayer uint32
	// Number of array layers.
	LayerCount uint32
	// Texel offset into the image subresource.
	ImageOffset Offset
	// Texel extent of the copied region.
	ImageExtent Extent
}
