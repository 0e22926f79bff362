package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/spaghettifunk/ignis/engine/renderer"
	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

func (b *Backend) CreateBuffer(size uint64, usage metadata.BufferUsage) (uint32, error) {
	var flags uint32
	if usage.Has(metadata.BufferUsageMapRead) {
		flags |= gl.MAP_READ_BIT
	}
	if usage.Has(metadata.BufferUsageMapWrite) {
		flags |= gl.MAP_WRITE_BIT
	}
	if usage.Has(metadata.BufferUsageDynamic) || usage.Has(metadata.BufferUsageTransferDst) {
		flags |= gl.DYNAMIC_STORAGE_BIT
	}

	var id uint32
	gl.CreateBuffers(1, &id)
	gl.NamedBufferStorage(id, int(size), nil, flags)
	if err := popError("buffer storage"); err != nil {
		gl.DeleteBuffers(1, &id)
		return 0, err
	}
	return id, nil
}

func (b *Backend) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (b *Backend) WriteBuffer(buffer uint32, offset uint64, data []byte) {
	gl.NamedBufferSubData(buffer, int(offset), len(data), gl.Ptr(data))
}

func (b *Backend) ReadBuffer(buffer uint32, offset uint64, out []byte) {
	gl.GetNamedBufferSubData(buffer, int(offset), len(out), gl.Ptr(out))
}

func (b *Backend) CopyBuffer(src, dst uint32, region metadata.BufferCopy) {
	gl.CopyNamedBufferSubData(src, dst, int(region.SrcOffset), int(region.DstOffset), int(region.Size))
}

func (b *Backend) CreateImage(desc metadata.ImageDesc) (uint32, error) {
	target := toTextureTarget(desc)
	internal := toInternalFormat(desc.Format)

	var id uint32
	gl.CreateTextures(target, 1, &id)

	levels := int32(desc.MipLevels)
	w, h := int32(desc.Width), int32(desc.Height)
	switch target {
	case gl.TEXTURE_1D:
		gl.TextureStorage1D(id, levels, internal, w)
	case gl.TEXTURE_1D_ARRAY:
		gl.TextureStorage2D(id, levels, internal, w, int32(desc.Layers))
	case gl.TEXTURE_2D, gl.TEXTURE_CUBE_MAP:
		gl.TextureStorage2D(id, levels, internal, w, h)
	case gl.TEXTURE_2D_ARRAY:
		gl.TextureStorage3D(id, levels, internal, w, h, int32(desc.Layers))
	case gl.TEXTURE_CUBE_MAP_ARRAY:
		gl.TextureStorage3D(id, levels, internal, w, h, int32(desc.Layers*6))
	case gl.TEXTURE_3D:
		gl.TextureStorage3D(id, levels, internal, w, h, int32(desc.Depth))
	case gl.TEXTURE_2D_MULTISAMPLE:
		gl.TextureStorage2DMultisample(id, int32(desc.Samples), internal, w, h, true)
	case gl.TEXTURE_2D_MULTISAMPLE_ARRAY:
		gl.TextureStorage3DMultisample(id, int32(desc.Samples), internal, w, h, int32(desc.Layers), true)
	}
	if err := popError("texture storage"); err != nil {
		gl.DeleteTextures(1, &id)
		return 0, err
	}
	return id, nil
}

func (b *Backend) DeleteImage(image uint32) {
	gl.DeleteTextures(1, &image)
}

func (b *Backend) CopyBufferToImage(buffer, image uint32, desc metadata.ImageDesc, region metadata.BufferImageCopy) {
	format, xtype := toTransferFormat(desc.Format)

	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, buffer)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(region.BufferRowLength))
	defer func() {
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
		gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	}()

	level := int32(region.MipLevel)
	off := region.ImageOffset
	ext := region.ImageExtent
	src := gl.PtrOffset(int(region.BufferOffset))

	switch desc.Kind {
	case metadata.ImageKind1D:
		if desc.Layers > 1 {
			gl.TextureSubImage2D(image, level, off.X, int32(region.BaseLayer),
				int32(ext.Width), int32(region.LayerCount), format, xtype, src)
		} else {
			gl.TextureSubImage1D(image, level, off.X, int32(ext.Width), format, xtype, src)
		}
	case metadata.ImageKind3D:
		gl.TextureSubImage3D(image, level, off.X, off.Y, off.Z,
			int32(ext.Width), int32(ext.Height), int32(ext.Depth), format, xtype, src)
	default:
		if desc.Layers > 1 || desc.Kind == metadata.ImageKindCube {
			gl.TextureSubImage3D(image, level, off.X, off.Y, int32(region.BaseLayer),
				int32(ext.Width), int32(ext.Height), int32(region.LayerCount), format, xtype, src)
		} else {
			gl.TextureSubImage2D(image, level, off.X, off.Y,
				int32(ext.Width), int32(ext.Height), format, xtype, src)
		}
	}
}

func (b *Backend) CopyImageToBuffer(image, buffer uint32, desc metadata.ImageDesc, region metadata.BufferImageCopy) {
	format, xtype := toTransferFormat(desc.Format)

	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, buffer)
	gl.PixelStorei(gl.PACK_ROW_LENGTH, int32(region.BufferRowLength))
	defer func() {
		gl.PixelStorei(gl.PACK_ROW_LENGTH, 0)
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	}()

	ext := region.ImageExtent
	rowTexels := ext.Width
	if region.BufferRowLength != 0 {
		rowTexels = region.BufferRowLength
	}
	bufSize := int32(rowTexels * ext.Height * ext.Depth * region.LayerCount * desc.Format.TexelSize())

	gl.GetTextureSubImage(image, int32(region.MipLevel),
		region.ImageOffset.X, region.ImageOffset.Y, region.ImageOffset.Z,
		int32(ext.Width), int32(ext.Height), int32(ext.Depth*region.LayerCount),
		format, xtype, bufSize, gl.PtrOffset(int(region.BufferOffset)))
}

func (b *Backend) GenerateMipmaps(image uint32) {
	gl.GenerateTextureMipmap(image)
}

func (b *Backend) CreateSampler(desc metadata.SamplerDesc) (uint32, error) {
	var id uint32
	gl.CreateSamplers(1, &id)

	gl.SamplerParameteri(id, gl.TEXTURE_MIN_FILTER, toMinFilter(desc.MinFilter, desc.MipFilter))
	gl.SamplerParameteri(id, gl.TEXTURE_MAG_FILTER, toMagFilter(desc.MagFilter))
	gl.SamplerParameteri(id, gl.TEXTURE_WRAP_S, toWrapMode(desc.WrapU))
	gl.SamplerParameteri(id, gl.TEXTURE_WRAP_T, toWrapMode(desc.WrapV))
	gl.SamplerParameteri(id, gl.TEXTURE_WRAP_R, toWrapMode(desc.WrapW))
	gl.SamplerParameterf(id, gl.TEXTURE_LOD_BIAS, desc.LODBias)
	gl.SamplerParameterf(id, gl.TEXTURE_MIN_LOD, desc.MinLOD)
	gl.SamplerParameterf(id, gl.TEXTURE_MAX_LOD, desc.MaxLOD)
	if desc.MaxAnisotropy > 1 {
		gl.SamplerParameterf(id, gl.TEXTURE_MAX_ANISOTROPY, desc.MaxAnisotropy)
	}
	if desc.Compare != nil {
		gl.SamplerParameteri(id, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
		gl.SamplerParameteri(id, gl.TEXTURE_COMPARE_FUNC, int32(toCompareOp(*desc.Compare)))
	}
	border := desc.BorderColor
	gl.SamplerParameterfv(id, gl.TEXTURE_BORDER_COLOR, &border[0])

	if err := popError("sampler"); err != nil {
		gl.DeleteSamplers(1, &id)
		return 0, err
	}
	return id, nil
}

func (b *Backend) DeleteSampler(sampler uint32) {
	gl.DeleteSamplers(1, &sampler)
}

func (b *Backend) CreateVertexLayout(attributes []metadata.VertexAttribute) (uint32, error) {
	var id uint32
	gl.CreateVertexArrays(1, &id)

	for _, attr := range attributes {
		gl.EnableVertexArrayAttrib(id, attr.Location)

		size, xtype, normalized := toVertexAttribFormat(attr.Format)
		switch attr.Format.BaseType() {
		case metadata.VertexBaseTypeInt:
			gl.VertexArrayAttribIFormat(id, attr.Location, size, xtype, attr.Offset)
		case metadata.VertexBaseTypeDouble:
			gl.VertexArrayAttribLFormat(id, attr.Location, size, xtype, attr.Offset)
		default:
			gl.VertexArrayAttribFormat(id, attr.Location, size, xtype, normalized, attr.Offset)
		}
		gl.VertexArrayAttribBinding(id, attr.Location, attr.Binding)

		if attr.Rate == metadata.InputRateInstance {
			divisor := attr.Divisor
			if divisor == 0 {
				divisor = 1
			}
			gl.VertexArrayBindingDivisor(id, attr.Binding, divisor)
		}
	}

	if err := popError("vertex array"); err != nil {
		gl.DeleteVertexArrays(1, &id)
		return 0, err
	}
	return id, nil
}

func (b *Backend) DeleteVertexLayout(layout uint32) {
	gl.DeleteVertexArrays(1, &layout)
}

func (b *Backend) CreateFramebuffer(attachments []renderer.NativeAttachment) (uint32, error) {
	var id uint32
	gl.CreateFramebuffers(1, &id)

	var drawBuffers []uint32
	for _, att := range attachments {
		gl.NamedFramebufferTexture(id, toAttachmentEnum(att.Point), att.Image, 0)
		if att.Point.IsColor() {
			drawBuffers = append(drawBuffers, gl.COLOR_ATTACHMENT0+uint32(att.Point.ColorIndex()))
		}
	}
	if len(drawBuffers) > 0 {
		gl.NamedFramebufferDrawBuffers(id, int32(len(drawBuffers)), &drawBuffers[0])
	}

	if status := gl.CheckNamedFramebufferStatus(id, gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &id)
		return 0, fmt.Errorf("framebuffer incomplete: 0x%04x", status)
	}
	return id, nil
}

func (b *Backend) DeleteFramebuffer(framebuffer uint32) {
	gl.DeleteFramebuffers(1, &framebuffer)
}

func (b *Backend) CompileShader(stage metadata.ShaderStage, source []byte) (uint32, error) {
	id := gl.CreateShader(toShaderStage(stage))

	csources, free := gl.Strs(string(source) + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteShader(id)
		return 0, fmt.Errorf("%s stage: %s", stage, strings.TrimRight(log, "\x00"))
	}
	return id, nil
}

func (b *Backend) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (b *Backend) LinkProgram(shaders []uint32) (uint32, []metadata.VertexInput, error) {
	program := gl.CreateProgram()
	for _, shader := range shaders {
		gl.AttachShader(program, shader)
	}
	gl.LinkProgram(program)
	for _, shader := range shaders {
		gl.DetachShader(program, shader)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, nil, fmt.Errorf("program link: %s", strings.TrimRight(log, "\x00"))
	}

	return program, reflectVertexInputs(program), nil
}

func (b *Backend) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

// reflectVertexInputs lists the active vertex attributes of a linked
// program, skipping built-ins.
func reflectVertexInputs(program uint32) []metadata.VertexInput {
	var count int32
	gl.GetProgramiv(program, gl.ACTIVE_ATTRIBUTES, &count)

	var inputs []metadata.VertexInput
	buf := make([]uint8, 256)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveAttrib(program, uint32(i), int32(len(buf)), &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		if strings.HasPrefix(name, "gl_") {
			continue
		}

		location := gl.GetAttribLocation(program, glString(name))
		if location < 0 {
			continue
		}
		base, components, ok := toVertexInput(xtype)
		// Arrays and matrices occupy consecutive locations.
		rows := attribLocationSpan(xtype)
		if !ok {
			if rows == 1 {
				continue
			}
			// Matrix columns behave like float vectors.
			base = metadata.VertexBaseTypeFloat
			components = matrixColumnComponents(xtype)
		}
		for n := int32(0); n < size; n++ {
			for r := uint32(0); r < rows; r++ {
				inputs = append(inputs, metadata.VertexInput{
					Location:   uint32(location) + uint32(n)*rows + r,
					BaseType:   base,
					Components: components,
				})
			}
		}
	}
	return inputs
}

// attribLocationSpan returns how many locations one element of the type
// spans. Matrices consume one location per column.
func attribLocationSpan(xtype uint32) uint32 {
	switch xtype {
	case gl.FLOAT_MAT2, gl.FLOAT_MAT2x3, gl.FLOAT_MAT2x4:
		return 2
	case gl.FLOAT_MAT3, gl.FLOAT_MAT3x2, gl.FLOAT_MAT3x4:
		return 3
	case gl.FLOAT_MAT4, gl.FLOAT_MAT4x2, gl.FLOAT_MAT4x3:
		return 4
	}
	return 1
}

// matrixColumnComponents returns the row count of a matrix type, i.e. the
// components of one column vector.
func matrixColumnComponents(xtype uint32) uint32 {
	switch xtype {
	case gl.FLOAT_MAT2, gl.FLOAT_MAT3x2, gl.FLOAT_MAT4x2:
		return 2
	case gl.FLOAT_MAT3, gl.FLOAT_MAT2x3, gl.FLOAT_MAT4x3:
		return 3
	case gl.FLOAT_MAT4, gl.FLOAT_MAT2x4, gl.FLOAT_MAT3x4:
		return 4
	}
	return 4
}

// popError drains the error queue after a creation call.
func popError(what string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%04x", what, code)
	}
	return nil
}
