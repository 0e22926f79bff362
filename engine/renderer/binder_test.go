package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

func newSampledImage(t *testing.T, d *Device) Handle {
	t.Helper()
	h, err := d.CreateImage(metadata.ImageDesc{
		Kind:   metadata.ImageKind2D,
		Width:  64,
		Height: 64,
		Format: metadata.FormatR8G8B8A8Unorm,
		Usage:  metadata.ImageUsageSampled | metadata.ImageUsageTransferDst,
	})
	require.NoError(t, err)
	return h
}

func TestBindTexturesOneWritePerSlot(t *testing.T) {
	d, b := newTestDevice(t)
	imgA := newSampledImage(t, d)
	imgB := newSampledImage(t, d)

	b.reset()
	require.NoError(t, d.BindTextures(5, []Handle{imgA, imgB}))

	binds := b.named("BindTexture")
	require.Len(t, binds, 2)
	assert.Equal(t, uint32(5), binds[0].args[0])
	assert.Equal(t, uint32(6), binds[1].args[0])
}

func TestBindTexturesSlotIsolation(t *testing.T) {
	d, b := newTestDevice(t)
	imgA := newSampledImage(t, d)
	imgB := newSampledImage(t, d)
	imgC := newSampledImage(t, d)

	require.NoError(t, d.BindTextures(5, []Handle{imgA, imgB}))

	// A narrower rebind must only touch the slots it names.
	b.reset()
	require.NoError(t, d.BindTextures(5, []Handle{imgC}))
	require.Len(t, b.named("BindTexture"), 1)

	slot5, err := d.BoundTexture(5)
	require.NoError(t, err)
	assert.Equal(t, imgC, slot5)

	slot6, err := d.BoundTexture(6)
	require.NoError(t, err)
	assert.Equal(t, imgB, slot6, "untouched slot keeps its binding")
}

func TestBindTexturesNilClearsSlot(t *testing.T) {
	d, b := newTestDevice(t)
	img := newSampledImage(t, d)
	require.NoError(t, d.BindTextures(2, []Handle{img}))

	b.reset()
	require.NoError(t, d.BindTextures(2, []Handle{NilHandle}))

	slot, err := d.BoundTexture(2)
	require.NoError(t, err)
	assert.True(t, slot.IsNil())

	binds := b.named("BindTexture")
	require.Len(t, binds, 1)
	assert.Equal(t, uint32(0), binds[0].args[1])
}

func TestBindTexturesSlotOutOfRange(t *testing.T) {
	d, b := newTestDevice(t)
	img := newSampledImage(t, d)

	err := d.BindTextures(b.limits.MaxTextureSlots-1, []Handle{img, img})
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
	assert.Empty(t, b.named("BindTexture"))
}

func TestBindTexturesReleasedImage(t *testing.T) {
	d, _ := newTestDevice(t)
	img := newSampledImage(t, d)
	require.NoError(t, d.DestroyImage(img))

	err := d.BindTextures(0, []Handle{img})
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestBindTexturesUsageViolation(t *testing.T) {
	d, _ := newTestDevice(t)
	img, err := d.CreateImage(metadata.ImageDesc{
		Kind:   metadata.ImageKind2D,
		Width:  32,
		Height: 32,
		Format: metadata.FormatR8G8B8A8Unorm,
		Usage:  metadata.ImageUsageColorAttachment,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, d.BindTextures(0, []Handle{img}), ErrUsageViolation)
}

func TestDestroyImageClearsTextureSlots(t *testing.T) {
	d, b := newTestDevice(t)
	img := newSampledImage(t, d)
	require.NoError(t, d.BindTextures(1, []Handle{img}))
	require.NoError(t, d.BindTextures(7, []Handle{img}))

	b.reset()
	require.NoError(t, d.DestroyImage(img))

	for _, slot := range []uint32{1, 7} {
		bound, err := d.BoundTexture(slot)
		require.NoError(t, err)
		assert.True(t, bound.IsNil())
	}
	assert.Len(t, b.named("BindTexture"), 2)
}

func TestBindSamplers(t *testing.T) {
	d, b := newTestDevice(t)
	s, err := d.CreateSampler(metadata.SamplerDesc{
		MinFilter: metadata.FilterModeLinear,
		MagFilter: metadata.FilterModeLinear,
	})
	require.NoError(t, err)

	b.reset()
	require.NoError(t, d.BindSamplers(3, []Handle{s}))
	require.Len(t, b.named("BindSampler"), 1)

	bound, err := d.BoundSampler(3)
	require.NoError(t, err)
	assert.Equal(t, s, bound)

	require.NoError(t, d.DestroySampler(s))
	bound, err = d.BoundSampler(3)
	require.NoError(t, err)
	assert.True(t, bound.IsNil())
}

func TestBindUniformBuffersAlignment(t *testing.T) {
	d, _ := newTestDevice(t)
	buf, err := d.CreateBuffer(1024, metadata.BufferUsageUniform)
	require.NoError(t, err)

	err = d.BindUniformBuffers(0, []BufferRange{{Buffer: buf, Offset: 128, Size: 64}})
	assert.ErrorIs(t, err, ErrOutOfBounds, "offset below the uniform alignment")

	assert.NoError(t, d.BindUniformBuffers(0, []BufferRange{{Buffer: buf, Offset: 256, Size: 64}}))
}

func TestBindUniformBuffersWholeRange(t *testing.T) {
	d, _ := newTestDevice(t)
	buf, err := d.CreateBuffer(1024, metadata.BufferUsageUniform)
	require.NoError(t, err)

	require.NoError(t, d.BindUniformBuffers(1, []BufferRange{{Buffer: buf, Offset: 256}}))

	bound, err := d.BoundUniformBuffer(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(768), bound.Size, "zero size resolves to the rest of the buffer")
}

func TestBindStorageBuffersUsage(t *testing.T) {
	d, _ := newTestDevice(t)
	buf, err := d.CreateBuffer(64, metadata.BufferUsageUniform)
	require.NoError(t, err)

	err = d.BindStorageBuffers(0, []BufferRange{{Buffer: buf}})
	assert.ErrorIs(t, err, ErrUsageViolation)
}

func TestBindVertexBuffersSlotIsolation(t *testing.T) {
	d, b := newTestDevice(t)
	layout, err := d.CreateVertexLayout([]metadata.VertexAttribute{
		{Location: 0, Binding: 0, Format: metadata.VertexFormatXyz32Float},
	})
	require.NoError(t, err)

	bufA, err := d.CreateBuffer(256, metadata.BufferUsageVertex)
	require.NoError(t, err)
	bufB, err := d.CreateBuffer(256, metadata.BufferUsageVertex)
	require.NoError(t, err)

	require.NoError(t, d.BindVertexBuffers(layout, 0, []VertexBufferView{
		{Buffer: bufA, Stride: 12},
		{Buffer: bufB, Stride: 16},
	}))

	b.reset()
	require.NoError(t, d.BindVertexBuffers(layout, 0, []VertexBufferView{{Buffer: bufB, Stride: 12}}))
	require.Len(t, b.named("BindVertexBuffer"), 1)

	// Destroying bufB must clear both of its slots on the layout.
	b.reset()
	require.NoError(t, d.DestroyBuffer(bufB))
	assert.Len(t, b.named("BindVertexBuffer"), 2)
}

func TestBindVertexBuffersUsageAndBounds(t *testing.T) {
	d, _ := newTestDevice(t)
	layout, err := d.CreateVertexLayout([]metadata.VertexAttribute{
		{Location: 0, Binding: 0, Format: metadata.VertexFormatXy32Float},
	})
	require.NoError(t, err)

	uniform, err := d.CreateBuffer(64, metadata.BufferUsageUniform)
	require.NoError(t, err)
	err = d.BindVertexBuffers(layout, 0, []VertexBufferView{{Buffer: uniform}})
	assert.ErrorIs(t, err, ErrUsageViolation)

	vertex, err := d.CreateBuffer(64, metadata.BufferUsageVertex)
	require.NoError(t, err)
	err = d.BindVertexBuffers(layout, 0, []VertexBufferView{{Buffer: vertex, Offset: 64}})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestBindTexturesMidListFailureMutatesNothing(t *testing.T) {
	d, b := newTestDevice(t)
	imgA := newSampledImage(t, d)
	stale := newSampledImage(t, d)
	require.NoError(t, d.DestroyImage(stale))

	b.reset()
	err := d.BindTextures(0, []Handle{imgA, stale})
	assert.ErrorIs(t, err, ErrInvalidHandle)

	slot, err := d.BoundTexture(0)
	require.NoError(t, err)
	assert.True(t, slot.IsNil(), "failed bind must not mutate earlier slots")
	assert.Empty(t, b.named("BindTexture"))
}

func TestBindSamplersMidListFailureMutatesNothing(t *testing.T) {
	d, b := newTestDevice(t)
	s, err := d.CreateSampler(metadata.SamplerDesc{
		MinFilter: metadata.FilterModeNearest,
		MagFilter: metadata.FilterModeNearest,
	})
	require.NoError(t, err)
	stale, err := d.CreateSampler(metadata.SamplerDesc{
		MinFilter: metadata.FilterModeNearest,
		MagFilter: metadata.FilterModeNearest,
	})
	require.NoError(t, err)
	require.NoError(t, d.DestroySampler(stale))

	b.reset()
	assert.ErrorIs(t, d.BindSamplers(0, []Handle{s, stale}), ErrInvalidHandle)

	slot, err := d.BoundSampler(0)
	require.NoError(t, err)
	assert.True(t, slot.IsNil())
	assert.Empty(t, b.named("BindSampler"))
}

func TestBindVertexBuffersMidListFailureMutatesNothing(t *testing.T) {
	d, b := newTestDevice(t)
	layout, err := d.CreateVertexLayout([]metadata.VertexAttribute{
		{Location: 0, Binding: 0, Format: metadata.VertexFormatXy32Float},
	})
	require.NoError(t, err)

	vertex, err := d.CreateBuffer(256, metadata.BufferUsageVertex)
	require.NoError(t, err)
	uniform, err := d.CreateBuffer(256, metadata.BufferUsageUniform)
	require.NoError(t, err)

	require.NoError(t, d.BindVertexBuffers(layout, 0, []VertexBufferView{{Buffer: vertex, Stride: 8}}))

	b.reset()
	err = d.BindVertexBuffers(layout, 0, []VertexBufferView{
		{Buffer: vertex, Stride: 16},
		{Buffer: uniform, Stride: 16},
	})
	assert.ErrorIs(t, err, ErrUsageViolation)
	assert.Empty(t, b.named("BindVertexBuffer"))

	// Destroying the buffer still clears exactly one slot, so slot 0 kept
	// its earlier binding.
	require.NoError(t, d.DestroyBuffer(vertex))
	assert.Len(t, b.named("BindVertexBuffer"), 1)
}

func TestBindUniformBuffersMidListFailureMutatesNothing(t *testing.T) {
	d, b := newTestDevice(t)
	buf, err := d.CreateBuffer(1024, metadata.BufferUsageUniform)
	require.NoError(t, err)

	b.reset()
	err = d.BindUniformBuffers(0, []BufferRange{
		{Buffer: buf, Offset: 0, Size: 64},
		{Buffer: buf, Offset: 100, Size: 64},
	})
	assert.ErrorIs(t, err, ErrOutOfBounds, "second offset breaks the uniform alignment")

	slot, err := d.BoundUniformBuffer(0)
	require.NoError(t, err)
	assert.True(t, slot.Buffer.IsNil())
	assert.Empty(t, b.named("BindUniformBuffer"))
}

func TestBindStorageBuffersMidListFailureMutatesNothing(t *testing.T) {
	d, b := newTestDevice(t)
	storage, err := d.CreateBuffer(256, metadata.BufferUsageStorage)
	require.NoError(t, err)
	uniform, err := d.CreateBuffer(256, metadata.BufferUsageUniform)
	require.NoError(t, err)

	b.reset()
	err = d.BindStorageBuffers(0, []BufferRange{
		{Buffer: storage},
		{Buffer: uniform},
	})
	assert.ErrorIs(t, err, ErrUsageViolation)

	slot, err := d.BoundStorageBuffer(0)
	require.NoError(t, err)
	assert.True(t, slot.Buffer.IsNil())
	assert.Empty(t, b.named("BindStorageBuffer"))
}

func TestBindFramebufferDefault(t *testing.T) {
	d, b := newTestDevice(t)
	assert.Equal(t, d.DefaultFramebuffer(), d.BoundFramebuffer())

	b.reset()
	require.NoError(t, d.BindFramebuffer(d.DefaultFramebuffer()))
	binds := b.named("BindFramebuffer")
	require.Len(t, binds, 1)
	assert.Equal(t, uint32(0), binds[0].args[0])
}

func TestCreateVertexLayoutValidation(t *testing.T) {
	d, b := newTestDevice(t)

	_, err := d.CreateVertexLayout([]metadata.VertexAttribute{
		{Location: 0, Binding: b.limits.MaxVertexBuffers, Format: metadata.VertexFormatX32Float},
	})
	assert.ErrorIs(t, err, ErrSlotOutOfRange)

	_, err = d.CreateVertexLayout([]metadata.VertexAttribute{
		{Location: 2, Binding: 0, Format: metadata.VertexFormatX32Float},
		{Location: 2, Binding: 0, Format: metadata.VertexFormatX32Float, Offset: 4},
	})
	assert.ErrorIs(t, err, ErrIncompatibleVertexLayout)
}
