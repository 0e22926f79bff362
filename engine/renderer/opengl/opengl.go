// Package opengl implements the native backend on OpenGL 4.6 core using
// direct state access, so that creation and binding calls never disturb
// the global texture or buffer targets.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/spaghettifunk/ignis/engine/core"
	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

// OpenGL reports no queryable upper bound for buffer storage.
const maxBufferSize = 1 << 30

// Backend drives an OpenGL 4.6 context. It must be created and used on
// the thread that owns the context.
type Backend struct {
	limits metadata.DeviceLimits
}

// New initializes the function pointers of the current context and
// captures the device limits. With debug enabled the native debug output
// is routed into the logger.
func New(debug bool) (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize opengl: %w", err)
	}

	b := &Backend{limits: queryLimits()}

	if debug {
		gl.Enable(gl.DEBUG_OUTPUT)
		gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
		gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
			switch severity {
			case gl.DEBUG_SEVERITY_HIGH:
				core.LogError("gl: %s", message)
			case gl.DEBUG_SEVERITY_MEDIUM:
				core.LogWarn("gl: %s", message)
			default:
				core.LogDebug("gl: %s", message)
			}
		}, nil)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	core.LogInfo("opengl %s on %s", version, vendor)
	return b, nil
}

// Limits returns the limits captured at initialization.
func (b *Backend) Limits() metadata.DeviceLimits { return b.limits }

// Shutdown releases nothing; the owning window tears the context down.
func (b *Backend) Shutdown() {}

func queryLimits() metadata.DeviceLimits {
	geti := func(pname uint32) uint32 {
		var v int32
		gl.GetIntegerv(pname, &v)
		if v < 0 {
			return 0
		}
		return uint32(v)
	}
	geti64 := func(pname uint32) uint64 {
		var v int64
		gl.GetInteger64v(pname, &v)
		if v < 0 {
			return 0
		}
		return uint64(v)
	}
	getIndexed := func(pname uint32, index uint32) uint32 {
		var v int32
		gl.GetIntegeri_v(pname, index, &v)
		if v < 0 {
			return 0
		}
		return uint32(v)
	}

	var anisotropy float32
	gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &anisotropy)

	return metadata.DeviceLimits{
		MaxImageSize2D:               geti(gl.MAX_TEXTURE_SIZE),
		MaxImageSize3D:               geti(gl.MAX_3D_TEXTURE_SIZE),
		MaxImageLayers:               geti(gl.MAX_ARRAY_TEXTURE_LAYERS),
		MaxBufferSize:                maxBufferSize,
		MaxVertexBuffers:             geti(gl.MAX_VERTEX_ATTRIB_BINDINGS),
		MaxVertexAttributes:          geti(gl.MAX_VERTEX_ATTRIBS),
		MaxTextureSlots:              geti(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS),
		MaxSamplerSlots:              geti(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS),
		MaxUniformBufferSlots:        geti(gl.MAX_UNIFORM_BUFFER_BINDINGS),
		MaxStorageBufferSlots:        geti(gl.MAX_SHADER_STORAGE_BUFFER_BINDINGS),
		MaxColorAttachments:          geti(gl.MAX_COLOR_ATTACHMENTS),
		UniformBufferOffsetAlignment: geti64(gl.UNIFORM_BUFFER_OFFSET_ALIGNMENT),
		StorageBufferOffsetAlignment: geti64(gl.SHADER_STORAGE_BUFFER_OFFSET_ALIGNMENT),
		MaxComputeGroupCount: [3]uint32{
			getIndexed(gl.MAX_COMPUTE_WORK_GROUP_COUNT, 0),
			getIndexed(gl.MAX_COMPUTE_WORK_GROUP_COUNT, 1),
			getIndexed(gl.MAX_COMPUTE_WORK_GROUP_COUNT, 2),
		},
		MaxAnisotropy: anisotropy,
	}
}

// glString returns a null terminated copy for the gl bindings.
func glString(s string) *uint8 {
	if !strings.HasSuffix(s, "\x00") {
		s += "\x00"
	}
	return gl.Str(s)
}
