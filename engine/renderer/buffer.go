package renderer

import (
	"fmt"

	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

type bufferResource struct {
	size  uint64
	usage metadata.BufferUsage
}

// CreateBuffer allocates an immutable-size device buffer. The usage flags
// are fixed for the buffer lifetime; binding a buffer for a purpose its
// flags do not cover is rejected at bind time.
func (d *Device) CreateBuffer(size uint64, usage metadata.BufferUsage) (Handle, error) {
	if size == 0 {
		return NilHandle, d.validationFailed(fmt.Errorf("%w: zero size buffer", ErrOutOfBounds))
	}
	if size > d.limits.MaxBufferSize {
		return NilHandle, d.validationFailed(fmt.Errorf("%w: buffer size %d exceeds %d",
			ErrLimitExceeded, size, d.limits.MaxBufferSize))
	}

	native, err := d.backend.CreateBuffer(size, usage)
	if err != nil {
		return NilHandle, fmt.Errorf("create buffer: %w", err)
	}
	return d.registry.allocate(ResourceKindBuffer, native, &bufferResource{size: size, usage: usage}), nil
}

// CreateBufferWith allocates a buffer and uploads its initial contents.
func (d *Device) CreateBufferWith(data []byte, usage metadata.BufferUsage) (Handle, error) {
	h, err := d.CreateBuffer(uint64(len(data)), usage)
	if err != nil {
		return NilHandle, err
	}
	entry, _ := d.registry.resolve(h, ResourceKindBuffer)
	d.backend.WriteBuffer(entry.native, 0, data)
	return h, nil
}

// DestroyBuffer releases the buffer and clears every binding slot that
// still refers to it. The handle is invalid afterwards.
func (d *Device) DestroyBuffer(h Handle) error {
	entry, err := d.registry.release(h, ResourceKindBuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	d.evictBuffer(h)
	d.backend.DeleteBuffer(entry.native)
	return nil
}

// WriteBuffer copies host data into a buffer region.
func (d *Device) WriteBuffer(h Handle, offset uint64, data []byte) error {
	entry, err := d.registry.resolve(h, ResourceKindBuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	res := entry.payload.(*bufferResource)
	if err := checkBufferRange(res, offset, uint64(len(data))); err != nil {
		return d.validationFailed(err)
	}
	if len(data) == 0 {
		return nil
	}
	d.backend.WriteBuffer(entry.native, offset, data)
	return nil
}

// ReadBuffer copies a buffer region back into host memory. It blocks until
// the device has finished writing the region.
func (d *Device) ReadBuffer(h Handle, offset uint64, out []byte) error {
	entry, err := d.registry.resolve(h, ResourceKindBuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	res := entry.payload.(*bufferResource)
	if err := checkBufferRange(res, offset, uint64(len(out))); err != nil {
		return d.validationFailed(err)
	}
	if len(out) == 0 {
		return nil
	}
	d.backend.ReadBuffer(entry.native, offset, out)
	return nil
}

// CopyBuffer copies regions between two buffers. Regions must not overlap
// when source and destination are the same buffer.
func (d *Device) CopyBuffer(src, dst Handle, regions []metadata.BufferCopy) error {
	srcEntry, err := d.registry.resolve(src, ResourceKindBuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	dstEntry, err := d.registry.resolve(dst, ResourceKindBuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	srcRes := srcEntry.payload.(*bufferResource)
	dstRes := dstEntry.payload.(*bufferResource)
	for _, region := range regions {
		if err := checkBufferRange(srcRes, region.SrcOffset, region.Size); err != nil {
			return d.validationFailed(err)
		}
		if err := checkBufferRange(dstRes, region.DstOffset, region.Size); err != nil {
			return d.validationFailed(err)
		}
	}
	for _, region := range regions {
		if region.Size == 0 {
			continue
		}
		d.backend.CopyBuffer(srcEntry.native, dstEntry.native, region)
	}
	return nil
}

func checkBufferRange(res *bufferResource, offset, size uint64) error {
	if offset > res.size || size > res.size-offset {
		return fmt.Errorf("%w: range [%d, %d) in buffer of size %d",
			ErrOutOfBounds, offset, offset+size, res.size)
	}
	return nil
}
