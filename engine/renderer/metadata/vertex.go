package metadata

/** @brief Scalar base class of a vertex attribute, used for linkage checks. */
type VertexBaseType int

const (
	VertexBaseTypeInt VertexBaseType = iota
	VertexBaseTypeFloat
	VertexBaseTypeDouble
)

/** @brief Vertex attribute formats. */
type VertexFormat int

const (
	VertexFormatX8Int VertexFormat = iota
	VertexFormatX8Uint
	VertexFormatX8Unorm
	VertexFormatXy8Unorm
	VertexFormatXyzw8Unorm
	VertexFormatX16Int
	VertexFormatX16Uint
	VertexFormatXy16Float
	VertexFormatX32Int
	VertexFormatX32Uint
	VertexFormatX32Float
	VertexFormatXy32Float
	VertexFormatXyz32Float
	VertexFormatXyzw32Float
	VertexFormatX64Float
)

// Components returns the number of scalar components of the format.
func (f VertexFormat) Components() uint32 {
	switch f {
	case VertexFormatXy8Unorm, VertexFormatXy16Float, VertexFormatXy32Float:
		return 2
	case VertexFormatXyz32Float:
		return 3
	case VertexFormatXyzw8Unorm, VertexFormatXyzw32Float:
		return 4
	}
	return 1
}

// Size returns the byte size of one attribute of the format.
func (f VertexFormat) Size() uint32 {
	switch f {
	case VertexFormatX8Int, VertexFormatX8Uint, VertexFormatX8Unorm:
		return 1
	case VertexFormatXy8Unorm, VertexFormatX16Int, VertexFormatX16Uint:
		return 2
	case VertexFormatXyzw8Unorm, VertexFormatXy16Float, VertexFormatX32Int, VertexFormatX32Uint, VertexFormatX32Float:
		return 4
	case VertexFormatXy32Float, VertexFormatX64Float:
		return 8
	case VertexFormatXyz32Float:
		return 12
	case VertexFormatXyzw32Float:
		return 16
	}
	return 0
}

// BaseType returns the scalar class the format resolves to in the shader.
func (f VertexFormat) BaseType() VertexBaseType {
	switch f {
	case VertexFormatX8Int, VertexFormatX8Uint, VertexFormatX16Int, VertexFormatX16Uint, VertexFormatX32Int, VertexFormatX32Uint:
		return VertexBaseTypeInt
	case VertexFormatX64Float:
		return VertexBaseTypeDouble
	}
	return VertexBaseTypeFloat
}

/** @brief Whether attribute data advances per vertex or per instance. */
type InputRate int

const (
	InputRateVertex InputRate = iota
	InputRateInstance
)

/** @brief A single attribute of a vertex layout. */
type VertexAttribute struct {
	// Shader input location.
	Location uint32
	// Vertex buffer binding slot the attribute is fetched from.
	Binding uint32
	Format  VertexFormat
	// Byte offset relative to the element start in the bound buffer.
	Offset uint32
	Rate   InputRate
	// Instances sharing the same attribute value; ignored for InputRateVertex.
	Divisor uint32
}

/** @brief A vertex input declared by a pipeline's vertex stage. */
type VertexInput struct {
	Location uint32
	BaseType VertexBaseType
	// Scalar components consumed at the location.
	Components uint32
}
