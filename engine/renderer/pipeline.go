package renderer

import (
	"fmt"

	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

type shaderResource struct {
	stage metadata.ShaderStage
}

// CreateShader compiles source for a single stage. The shader object is
// only an input to CreatePipeline; it can be destroyed once every pipeline
// using it has been created.
func (d *Device) CreateShader(stage metadata.ShaderStage, source []byte) (Handle, error) {
	native, err := d.backend.CompileShader(stage, source)
	if err != nil {
		return NilHandle, fmt.Errorf("compile %s shader: %w", stage, err)
	}
	return d.registry.allocate(ResourceKindShader, native, &shaderResource{stage: stage}), nil
}

// DestroyShader releases the shader object.
func (d *Device) DestroyShader(h Handle) error {
	entry, err := d.registry.release(h, ResourceKindShader)
	if err != nil {
		return d.validationFailed(err)
	}
	d.backend.DeleteShader(entry.native)
	return nil
}

// ShaderStages names the shader of each stage of a pipeline. A nil handle
// means the stage is absent. Only three combinations are accepted: vertex
// plus fragment, mesh plus fragment with an optional task stage, and a
// sole compute stage.
type ShaderStages struct {
	Vertex   Handle
	Fragment Handle
	Mesh     Handle
	Task     Handle
	Compute  Handle
}

// PipelineDesc describes an immutable pipeline. Nil state blocks take the
// defaults: triangles without primitive restart, no culling with filled
// counter-clockwise front faces, depth test and write enabled with a Less
// compare, stencil off and blending disabled.
type PipelineDesc struct {
	Stages        ShaderStages
	InputAssembly *metadata.InputAssemblyState
	Rasterization *metadata.RasterizationState
	DepthStencil  *metadata.DepthStencilState
	ColorBlend    *metadata.ColorBlendState
}

// pipelineResource is the fully resolved pipeline snapshot. Binding it
// replays each block as a separate native write.
type pipelineResource struct {
	program       uint32
	compute       bool
	inputAssembly metadata.InputAssemblyState
	rasterization metadata.RasterizationState
	depthStencil  metadata.DepthStencilState
	colorBlend    metadata.ColorBlendState
	// Vertex inputs reflected from the linked program.
	inputs []metadata.VertexInput
}

// DefaultInputAssembly returns the input assembly block used when a
// pipeline omits one.
func DefaultInputAssembly() metadata.InputAssemblyState {
	return metadata.InputAssemblyState{Topology: metadata.PrimitiveTopologyTriangles}
}

// DefaultRasterization returns the rasterizer block used when a pipeline
// omits one.
func DefaultRasterization() metadata.RasterizationState {
	return metadata.RasterizationState{
		PolygonMode: metadata.PolygonModeFill,
		CullMode:    metadata.FaceCullModeNone,
		FrontFace:   metadata.FrontFaceCounterClockwise,
	}
}

// DefaultDepthStencil returns the depth stencil block used when a pipeline
// omits one.
func DefaultDepthStencil() metadata.DepthStencilState {
	return metadata.DepthStencilState{
		DepthTest:      true,
		DepthWrite:     true,
		DepthCompareOp: metadata.CompareOpLess,
		StencilFront:   metadata.StencilFaceKeep,
		StencilBack:    metadata.StencilFaceKeep,
	}
}

// DefaultColorBlend returns the blend block used when a pipeline omits
// one: a single attachment with blending disabled.
func DefaultColorBlend() metadata.ColorBlendState {
	return metadata.ColorBlendState{
		Attachments: []metadata.ColorBlendAttachment{{Enable: false}},
	}
}

// CreatePipeline links the given stages into an immutable pipeline. Stage
// combinations outside the three closed variants fail with
// ErrIncompleteStageSet before any native work happens.
func (d *Device) CreatePipeline(desc PipelineDesc) (Handle, error) {
	stages := desc.Stages
	var roles []struct {
		handle Handle
		stage  metadata.ShaderStage
	}
	addRole := func(h Handle, stage metadata.ShaderStage) {
		roles = append(roles, struct {
			handle Handle
			stage  metadata.ShaderStage
		}{h, stage})
	}

	compute := false
	switch {
	case !stages.Compute.IsNil():
		if !stages.Vertex.IsNil() || !stages.Fragment.IsNil() || !stages.Mesh.IsNil() || !stages.Task.IsNil() {
			return NilHandle, d.validationFailed(fmt.Errorf(
				"%w: compute stage cannot be combined with graphics stages", ErrIncompleteStageSet))
		}
		compute = true
		addRole(stages.Compute, metadata.ShaderStageCompute)

	case !stages.Mesh.IsNil():
		if !stages.Vertex.IsNil() {
			return NilHandle, d.validationFailed(fmt.Errorf(
				"%w: mesh and vertex stages are mutually exclusive", ErrIncompleteStageSet))
		}
		if stages.Fragment.IsNil() {
			return NilHandle, d.validationFailed(fmt.Errorf(
				"%w: mesh pipeline requires a fragment stage", ErrIncompleteStageSet))
		}
		if !stages.Task.IsNil() {
			addRole(stages.Task, metadata.ShaderStageTask)
		}
		addRole(stages.Mesh, metadata.ShaderStageMesh)
		addRole(stages.Fragment, metadata.ShaderStageFragment)

	case !stages.Vertex.IsNil():
		if stages.Fragment.IsNil() {
			return NilHandle, d.validationFailed(fmt.Errorf(
				"%w: vertex pipeline requires a fragment stage", ErrIncompleteStageSet))
		}
		if !stages.Task.IsNil() {
			return NilHandle, d.validationFailed(fmt.Errorf(
				"%w: task stage requires a mesh stage", ErrIncompleteStageSet))
		}
		addRole(stages.Vertex, metadata.ShaderStageVertex)
		addRole(stages.Fragment, metadata.ShaderStageFragment)

	default:
		return NilHandle, d.validationFailed(fmt.Errorf("%w: no stages", ErrIncompleteStageSet))
	}

	natives := make([]uint32, 0, len(roles))
	for _, role := range roles {
		entry, err := d.registry.resolve(role.handle, ResourceKindShader)
		if err != nil {
			return NilHandle, d.validationFailed(err)
		}
		res := entry.payload.(*shaderResource)
		if res.stage != role.stage {
			return NilHandle, d.validationFailed(fmt.Errorf(
				"%w: %s shader supplied for the %s stage", ErrIncompleteStageSet, res.stage, role.stage))
		}
		natives = append(natives, entry.native)
	}

	program, inputs, err := d.backend.LinkProgram(natives)
	if err != nil {
		return NilHandle, fmt.Errorf("link pipeline: %w", err)
	}

	res := &pipelineResource{
		program:       program,
		compute:       compute,
		inputAssembly: DefaultInputAssembly(),
		rasterization: DefaultRasterization(),
		depthStencil:  DefaultDepthStencil(),
		colorBlend:    DefaultColorBlend(),
		inputs:        inputs,
	}
	if desc.InputAssembly != nil {
		res.inputAssembly = *desc.InputAssembly
	}
	if desc.Rasterization != nil {
		res.rasterization = *desc.Rasterization
	}
	if desc.DepthStencil != nil {
		res.depthStencil = *desc.DepthStencil
	}
	if desc.ColorBlend != nil {
		res.colorBlend = metadata.ColorBlendState{
			Attachments: append([]metadata.ColorBlendAttachment(nil), desc.ColorBlend.Attachments...),
		}
	}
	return d.registry.allocate(ResourceKindPipeline, program, res), nil
}

// DestroyPipeline releases the pipeline. If it is currently bound, the
// bound pipeline slot is cleared.
func (d *Device) DestroyPipeline(h Handle) error {
	entry, err := d.registry.release(h, ResourceKindPipeline)
	if err != nil {
		return d.validationFailed(err)
	}
	if d.table.pipeline == h {
		d.table.pipeline = NilHandle
		d.backend.UseProgram(0)
	}
	d.backend.DeleteProgram(entry.payload.(*pipelineResource).program)
	return nil
}
