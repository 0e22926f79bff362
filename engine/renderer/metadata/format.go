package metadata

/** @brief Texel formats supported for image storage. */
type Format int

const (
	FormatUnknown Format = iota
	FormatR8Unorm
	FormatR8G8Unorm
	FormatR8G8B8A8Unorm
	FormatR8G8B8A8Srgb
	FormatR16G16Float
	FormatR16G16B16Float
	FormatR16G16B16A16Float
	FormatR32Float
	FormatR32Uint
	FormatD32Float
	FormatD24UnormS8Uint
)

// TexelSize returns the byte size of a single texel, or 0 for unknown formats.
func (f Format) TexelSize() uint32 {
	switch f {
	case FormatR8Unorm:
		return 1
	case FormatR8G8Unorm:
		return 2
	case FormatR8G8B8A8Unorm, FormatR8G8B8A8Srgb, FormatR32Float, FormatR32Uint, FormatD32Float, FormatD24UnormS8Uint:
		return 4
	case FormatR16G16Float:
		return 4
	case FormatR16G16B16Float:
		return 6
	case FormatR16G16B16A16Float:
		return 8
	}
	return 0
}

// HasDepth reports whether the format carries a depth aspect.
func (f Format) HasDepth() bool {
	return f == FormatD32Float || f == FormatD24UnormS8Uint
}

// HasStencil reports whether the format carries a stencil aspect.
func (f Format) HasStencil() bool {
	return f == FormatD24UnormS8Uint
}

// Valid reports whether the format is a member of the supported set.
func (f Format) Valid() bool {
	return f > FormatUnknown && f <= FormatD24UnormS8Uint
}

func (f Format) String() string {
	switch f {
	case FormatR8Unorm:
		return "R8Unorm"
	case FormatR8G8Unorm:
		return "R8G8Unorm"
	case FormatR8G8B8A8Unorm:
		return "R8G8B8A8Unorm"
	case FormatR8G8B8A8Srgb:
		return "R8G8B8A8Srgb"
	case FormatR16G16Float:
		return "R16G16Float"
	case FormatR16G16B16Float:
		return "R16G16B16Float"
	case FormatR16G16B16A16Float:
		return "R16G16B16A16Float"
	case FormatR32Float:
		return "R32Float"
	case FormatR32Uint:
		return "R32Uint"
	case FormatD32Float:
		return "D32Float"
	case FormatD24UnormS8Uint:
		return "D24UnormS8Uint"
	}
	return "Unknown"
}
