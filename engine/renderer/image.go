package renderer

import (
	"fmt"

	vmath "github.com/spaghettifunk/ignis/engine/math"
	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

type imageResource struct {
	desc metadata.ImageDesc
}

// CreateImage allocates image storage for the given description. Zero
// values for Depth, Layers, Samples and MipLevels are normalized to one.
func (d *Device) CreateImage(desc metadata.ImageDesc) (Handle, error) {
	desc = normalizeImageDesc(desc)
	if !desc.Format.Valid() {
		return NilHandle, d.validationFailed(fmt.Errorf("%w: image format %d", ErrUnsupportedFormat, desc.Format))
	}
	if err := d.checkImageLimits(desc); err != nil {
		return NilHandle, d.validationFailed(err)
	}

	native, err := d.backend.CreateImage(desc)
	if err != nil {
		return NilHandle, fmt.Errorf("create image: %w", err)
	}
	return d.registry.allocate(ResourceKindImage, native, &imageResource{desc: desc}), nil
}

// DestroyImage releases the image and clears every texture slot that still
// refers to it.
func (d *Device) DestroyImage(h Handle) error {
	entry, err := d.registry.release(h, ResourceKindImage)
	if err != nil {
		return d.validationFailed(err)
	}
	d.evictImage(h)
	d.backend.DeleteImage(entry.native)
	return nil
}

// ImageDesc returns the creation-time description of a live image.
func (d *Device) ImageDesc(h Handle) (metadata.ImageDesc, error) {
	entry, err := d.registry.resolve(h, ResourceKindImage)
	if err != nil {
		return metadata.ImageDesc{}, d.validationFailed(err)
	}
	return entry.payload.(*imageResource).desc, nil
}

// GenerateMipmaps fills all mip levels above the base from level zero.
func (d *Device) GenerateMipmaps(h Handle) error {
	entry, err := d.registry.resolve(h, ResourceKindImage)
	if err != nil {
		return d.validationFailed(err)
	}
	d.backend.GenerateMipmaps(entry.native)
	return nil
}

// CopyBufferToImage uploads buffer regions into image subresources.
func (d *Device) CopyBufferToImage(src, dst Handle, regions []metadata.BufferImageCopy) error {
	bufEntry, err := d.registry.resolve(src, ResourceKindBuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	imgEntry, err := d.registry.resolve(dst, ResourceKindImage)
	if err != nil {
		return d.validationFailed(err)
	}
	bufRes := bufEntry.payload.(*bufferResource)
	imgRes := imgEntry.payload.(*imageResource)
	normalized := make([]metadata.BufferImageCopy, len(regions))
	for i, region := range regions {
		region = normalizeImageCopy(region)
		if err := checkImageCopy(bufRes, imgRes, region); err != nil {
			return d.validationFailed(err)
		}
		normalized[i] = region
	}
	for _, region := range normalized {
		d.backend.CopyBufferToImage(bufEntry.native, imgEntry.native, imgRes.desc, region)
	}
	return nil
}

// CopyImageToBuffer downloads image subresources into buffer regions.
func (d *Device) CopyImageToBuffer(src, dst Handle, regions []metadata.BufferImageCopy) error {
	imgEntry, err := d.registry.resolve(src, ResourceKindImage)
	if err != nil {
		return d.validationFailed(err)
	}
	bufEntry, err := d.registry.resolve(dst, ResourceKindBuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	imgRes := imgEntry.payload.(*imageResource)
	bufRes := bufEntry.payload.(*bufferResource)
	normalized := make([]metadata.BufferImageCopy, len(regions))
	for i, region := range regions {
		region = normalizeImageCopy(region)
		if err := checkImageCopy(bufRes, imgRes, region); err != nil {
			return d.validationFailed(err)
		}
		normalized[i] = region
	}
	for _, region := range normalized {
		d.backend.CopyImageToBuffer(imgEntry.native, bufEntry.native, imgRes.desc, region)
	}
	return nil
}

func normalizeImageDesc(desc metadata.ImageDesc) metadata.ImageDesc {
	desc.Depth = vmath.Max(desc.Depth, 1)
	desc.Layers = vmath.Max(desc.Layers, 1)
	desc.Samples = vmath.Max(desc.Samples, 1)
	desc.MipLevels = vmath.Max(desc.MipLevels, 1)
	if desc.Kind != metadata.ImageKind3D {
		desc.Depth = 1
	}
	if desc.Kind == metadata.ImageKind1D {
		desc.Height = vmath.Max(desc.Height, 1)
	}
	return desc
}

func (d *Device) checkImageLimits(desc metadata.ImageDesc) error {
	if desc.Width == 0 || desc.Height == 0 {
		return fmt.Errorf("%w: zero extent image", ErrOutOfBounds)
	}
	switch desc.Kind {
	case metadata.ImageKind3D:
		if desc.Width > d.limits.MaxImageSize3D || desc.Height > d.limits.MaxImageSize3D || desc.Depth > d.limits.MaxImageSize3D {
			return fmt.Errorf("%w: 3D extent %dx%dx%d exceeds %d",
				ErrLimitExceeded, desc.Width, desc.Height, desc.Depth, d.limits.MaxImageSize3D)
		}
	case metadata.ImageKindCube:
		if desc.Width != desc.Height {
			return fmt.Errorf("%w: cube faces must be square, got %dx%d", ErrOutOfBounds, desc.Width, desc.Height)
		}
		fallthrough
	default:
		if desc.Width > d.limits.MaxImageSize2D || desc.Height > d.limits.MaxImageSize2D {
			return fmt.Errorf("%w: extent %dx%d exceeds %d",
				ErrLimitExceeded, desc.Width, desc.Height, d.limits.MaxImageSize2D)
		}
	}
	if desc.Layers > d.limits.MaxImageLayers {
		return fmt.Errorf("%w: %d layers exceeds %d", ErrLimitExceeded, desc.Layers, d.limits.MaxImageLayers)
	}
	if max := maxMipLevels(desc); desc.MipLevels > max {
		return fmt.Errorf("%w: %d mip levels for extent %dx%dx%d",
			ErrOutOfBounds, desc.MipLevels, desc.Width, desc.Height, desc.Depth)
	}
	return nil
}

// maxMipLevels is the full chain length for the level zero extent.
func maxMipLevels(desc metadata.ImageDesc) uint32 {
	dim := vmath.Max(desc.Width, vmath.Max(desc.Height, desc.Depth))
	levels := uint32(1)
	for dim > 1 {
		dim >>= 1
		levels++
	}
	return levels
}

func normalizeImageCopy(region metadata.BufferImageCopy) metadata.BufferImageCopy {
	if region.LayerCount == 0 {
		region.LayerCount = 1
	}
	if region.ImageExtent.Depth == 0 {
		region.ImageExtent.Depth = 1
	}
	return region
}

func checkImageCopy(buf *bufferResource, img *imageResource, region metadata.BufferImageCopy) error {
	desc := img.desc
	if region.MipLevel >= desc.MipLevels {
		return fmt.Errorf("%w: mip level %d of %d", ErrOutOfBounds, region.MipLevel, desc.MipLevels)
	}
	if region.BaseLayer+region.LayerCount > desc.Layers {
		return fmt.Errorf("%w: layers [%d, %d) of %d",
			ErrOutOfBounds, region.BaseLayer, region.BaseLayer+region.LayerCount, desc.Layers)
	}

	mip := mipExtent(desc.Extent(), region.MipLevel)
	ext := region.ImageExtent
	off := region.ImageOffset
	if off.X < 0 || off.Y < 0 || off.Z < 0 ||
		uint32(off.X)+ext.Width > mip.Width ||
		uint32(off.Y)+ext.Height > mip.Height ||
		uint32(off.Z)+ext.Depth > mip.Depth {
		return fmt.Errorf("%w: region %+v outside mip extent %+v", ErrOutOfBounds, region, mip)
	}

	rowTexels := uint64(ext.Width)
	if region.BufferRowLength != 0 {
		rowTexels = uint64(region.BufferRowLength)
	}
	texels := rowTexels * uint64(ext.Height) * uint64(ext.Depth) * uint64(region.LayerCount)
	bytes := texels * uint64(desc.Format.TexelSize())
	if region.BufferOffset > buf.size || bytes > buf.size-region.BufferOffset {
		return fmt.Errorf("%w: %d bytes at offset %d in buffer of size %d",
			ErrOutOfBounds, bytes, region.BufferOffset, buf.size)
	}
	return nil
}

func mipExtent(base metadata.Extent, level uint32) metadata.Extent {
	return metadata.Extent{
		Width:  vmath.Max(base.Width>>level, 1),
		Height: vmath.Max(base.Height>>level, 1),
		Depth:  vmath.Max(base.Depth>>level, 1),
	}
}
