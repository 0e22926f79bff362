package metadata

/** @brief Immutable device limits captured at context creation. */
type DeviceLimits struct {
	// Largest width/height of a 2D image in texels.
	MaxImageSize2D uint32
	// Largest width/height/depth of a 3D image in texels.
	MaxImageSize3D uint32
	// Largest array layer count.
	MaxImageLayers uint32
	// Largest buffer size in bytes.
	MaxBufferSize uint64
	// Number of vertex buffer binding slots.
	MaxVertexBuffers uint32
	// Number of vertex attributes in a layout.
	MaxVertexAttributes uint32
	// Number of texture binding slots.
	MaxTextureSlots uint32
	// Number of sampler binding slots.
	MaxSamplerSlots uint32
	// Number of uniform buffer binding slots.
	MaxUniformBufferSlots uint32
	// Number of storage buffer binding slots.
	MaxStorageBufferSlots uint32
	// Number of color attachments on a framebuffer.
	MaxColorAttachments uint32
	// Required offset alignment for uniform buffer bindings.
	UniformBufferOffsetAlignment uint64
	// Required offset alignment for storage buffer bindings.
	StorageBufferOffsetAlignment uint64
	// Largest compute work group counts per dimension.
	MaxComputeGroupCount [3]uint32
	// Largest anisotropic filtering ratio.
	MaxAnisotropy float32
}
