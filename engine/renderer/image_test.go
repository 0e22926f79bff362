package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

func TestCreateImageNormalizesDesc(t *testing.T) {
	d, _ := newTestDevice(t)

	h, err := d.CreateImage(metadata.ImageDesc{
		Kind:   metadata.ImageKind2D,
		Width:  128,
		Height: 128,
		Format: metadata.FormatR8G8B8A8Unorm,
		Usage:  metadata.ImageUsageSampled,
	})
	require.NoError(t, err)

	desc, err := d.ImageDesc(h)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), desc.Depth)
	assert.Equal(t, uint32(1), desc.Layers)
	assert.Equal(t, uint32(1), desc.Samples)
	assert.Equal(t, uint32(1), desc.MipLevels)
}

func TestCreateImageUnsupportedFormat(t *testing.T) {
	d, b := newTestDevice(t)
	before := d.LiveResources()

	_, err := d.CreateImage(metadata.ImageDesc{
		Kind:   metadata.ImageKind2D,
		Width:  64,
		Height: 64,
		Format: metadata.FormatUnknown,
		Usage:  metadata.ImageUsageSampled,
	})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Equal(t, before, d.LiveResources())
	assert.Empty(t, b.named("CreateImage"))
}

func TestCreateImageLimits(t *testing.T) {
	d, b := newTestDevice(t)

	_, err := d.CreateImage(metadata.ImageDesc{
		Kind:   metadata.ImageKind2D,
		Width:  b.limits.MaxImageSize2D + 1,
		Height: 64,
		Format: metadata.FormatR8Unorm,
		Usage:  metadata.ImageUsageSampled,
	})
	assert.ErrorIs(t, err, ErrLimitExceeded)

	_, err = d.CreateImage(metadata.ImageDesc{
		Kind:   metadata.ImageKind2D,
		Width:  64,
		Height: 64,
		Layers: b.limits.MaxImageLayers + 1,
		Format: metadata.FormatR8Unorm,
		Usage:  metadata.ImageUsageSampled,
	})
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestCreateImageCubeMustBeSquare(t *testing.T) {
	d, _ := newTestDevice(t)
	_, err := d.CreateImage(metadata.ImageDesc{
		Kind:   metadata.ImageKindCube,
		Width:  64,
		Height: 32,
		Format: metadata.FormatR8G8B8A8Unorm,
		Usage:  metadata.ImageUsageSampled,
	})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCreateImageMipChainTooDeep(t *testing.T) {
	d, _ := newTestDevice(t)
	_, err := d.CreateImage(metadata.ImageDesc{
		Kind:      metadata.ImageKind2D,
		Width:     64,
		Height:    64,
		MipLevels: 8, // a 64x64 chain has 7 levels
		Format:    metadata.FormatR8G8B8A8Unorm,
		Usage:     metadata.ImageUsageSampled,
	})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCopyBufferToImage(t *testing.T) {
	d, b := newTestDevice(t)

	img := newSampledImage(t, d) // 64x64 RGBA8
	buf, err := d.CreateBuffer(64*64*4, metadata.BufferUsageTransferSrc)
	require.NoError(t, err)

	require.NoError(t, d.CopyBufferToImage(buf, img, []metadata.BufferImageCopy{{
		ImageExtent: metadata.Extent{Width: 64, Height: 64},
	}}))
	assert.Len(t, b.named("CopyBufferToImage"), 1)
}

func TestCopyBufferToImageBounds(t *testing.T) {
	d, _ := newTestDevice(t)
	img := newSampledImage(t, d)

	// Buffer too small for the region.
	small, err := d.CreateBuffer(16, metadata.BufferUsageTransferSrc)
	require.NoError(t, err)
	err = d.CopyBufferToImage(small, img, []metadata.BufferImageCopy{{
		ImageExtent: metadata.Extent{Width: 64, Height: 64},
	}})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	// Region outside the image.
	big, err := d.CreateBuffer(1<<18, metadata.BufferUsageTransferSrc)
	require.NoError(t, err)
	err = d.CopyBufferToImage(big, img, []metadata.BufferImageCopy{{
		ImageOffset: metadata.Offset{X: 32},
		ImageExtent: metadata.Extent{Width: 64, Height: 64},
	}})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	// Mip level beyond the chain.
	err = d.CopyBufferToImage(big, img, []metadata.BufferImageCopy{{
		MipLevel:    4,
		ImageExtent: metadata.Extent{Width: 1, Height: 1},
	}})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCopyBufferToImageKeepsRegionsIntact(t *testing.T) {
	d, _ := newTestDevice(t)
	img := newSampledImage(t, d)
	buf, err := d.CreateBuffer(64*64*4, metadata.BufferUsageTransferSrc)
	require.NoError(t, err)

	// Zero LayerCount and Depth are normalized internally; the caller's
	// slice must not change.
	regions := []metadata.BufferImageCopy{{
		ImageExtent: metadata.Extent{Width: 64, Height: 64},
	}}
	require.NoError(t, d.CopyBufferToImage(buf, img, regions))
	assert.Equal(t, uint32(0), regions[0].LayerCount)
	assert.Equal(t, uint32(0), regions[0].ImageExtent.Depth)
}

func TestGenerateMipmaps(t *testing.T) {
	d, b := newTestDevice(t)
	img := newSampledImage(t, d)
	require.NoError(t, d.GenerateMipmaps(img))
	assert.Len(t, b.named("GenerateMipmaps"), 1)
}
