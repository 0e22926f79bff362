package metadata

/** @brief Kinds of asynchronous GPU queries. */
type QueryKind int

const (
	/** @brief Nanoseconds elapsed between begin and end. */
	QueryKindTimeElapsed QueryKind = iota
	/** @brief Whether any samples passed the depth test. */
	QueryKindOcclusion
	/** @brief Exact number of samples that passed the depth test. */
	QueryKindOcclusionPrecise
	/** @brief Number of primitives emitted by the primitive stage. */
	QueryKindPrimitivesGenerated
	/** @brief GPU timestamp written at end. */
	QueryKindTimestamp
)

/** @brief Memory barrier bits for shader and transfer access ordering. */
type BarrierMask uint32

const (
	BarrierVertexAttributeRead BarrierMask = 1 << iota
	BarrierIndexRead
	BarrierUniformRead
	BarrierSampledImageRead
	BarrierStorageImageRW
	BarrierIndirectCommandRead
	BarrierBufferTransferRW
	BarrierImageTransferRW
	BarrierFramebufferRW
	BarrierStorageBufferRW

	BarrierAll BarrierMask = 0xFFFFFFFF
)
