package renderer

import (
	"fmt"

	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

// Attachment pairs an attachment point with the image bound to it.
type Attachment struct {
	Point metadata.AttachmentPoint
	Image Handle
}

type framebufferResource struct {
	isDefault   bool
	width       uint32
	height      uint32
	samples     uint32
	attachments map[metadata.AttachmentPoint]Handle
}

func (f *framebufferResource) hasAttachment(point metadata.AttachmentPoint) bool {
	if f.isDefault {
		// The window-system framebuffer exposes one color target plus
		// depth and stencil.
		switch point {
		case metadata.AttachmentPointColor0, metadata.AttachmentPointDepth,
			metadata.AttachmentPointStencil, metadata.AttachmentPointDepthStencil:
			return true
		}
		return false
	}
	_, ok := f.attachments[point]
	return ok
}

// CreateFramebuffer builds a render target from image attachments. All
// attachments must share the same extent and sample count, color formats
// must be color-renderable and depth or stencil points must carry the
// matching aspect.
func (d *Device) CreateFramebuffer(attachments []Attachment) (Handle, error) {
	if len(attachments) == 0 {
		return NilHandle, d.validationFailed(fmt.Errorf("%w: no attachments", ErrInvalidAttachmentSet))
	}

	res := &framebufferResource{attachments: map[metadata.AttachmentPoint]Handle{}}
	native := make([]NativeAttachment, 0, len(attachments))

	for _, att := range attachments {
		imgEntry, err := d.registry.resolve(att.Image, ResourceKindImage)
		if err != nil {
			return NilHandle, d.validationFailed(err)
		}
		desc := imgEntry.payload.(*imageResource).desc

		switch {
		case att.Point.IsColor():
			if int(att.Point.ColorIndex()) >= int(d.limits.MaxColorAttachments) {
				return NilHandle, d.validationFailed(fmt.Errorf("%w: color attachment %d of %d",
					ErrSlotOutOfRange, att.Point.ColorIndex(), d.limits.MaxColorAttachments))
			}
			if desc.Format.HasDepth() {
				return NilHandle, d.validationFailed(fmt.Errorf("%w: depth format %s on color point",
					ErrInvalidAttachmentSet, desc.Format))
			}
		case att.Point == metadata.AttachmentPointDepth:
			if !desc.Format.HasDepth() {
				return NilHandle, d.validationFailed(fmt.Errorf("%w: format %s has no depth aspect",
					ErrInvalidAttachmentSet, desc.Format))
			}
		case att.Point == metadata.AttachmentPointStencil, att.Point == metadata.AttachmentPointDepthStencil:
			if !desc.Format.HasStencil() {
				return NilHandle, d.validationFailed(fmt.Errorf("%w: format %s has no stencil aspect",
					ErrInvalidAttachmentSet, desc.Format))
			}
		}

		if _, dup := res.attachments[att.Point]; dup {
			return NilHandle, d.validationFailed(fmt.Errorf("%w: attachment point %d bound twice",
				ErrInvalidAttachmentSet, att.Point))
		}

		if res.width == 0 {
			res.width, res.height, res.samples = desc.Width, desc.Height, desc.Samples
		} else if desc.Width != res.width || desc.Height != res.height || desc.Samples != res.samples {
			return NilHandle, d.validationFailed(fmt.Errorf(
				"%w: attachment extent %dx%d samples %d, framebuffer %dx%d samples %d",
				ErrInvalidAttachmentSet, desc.Width, desc.Height, desc.Samples,
				res.width, res.height, res.samples))
		}

		res.attachments[att.Point] = att.Image
		native = append(native, NativeAttachment{Point: att.Point, Image: imgEntry.native})
	}

	id, err := d.backend.CreateFramebuffer(native)
	if err != nil {
		return NilHandle, fmt.Errorf("create framebuffer: %w", err)
	}
	return d.registry.allocate(ResourceKindFramebuffer, id, res), nil
}

// DestroyFramebuffer releases the framebuffer. The default framebuffer
// cannot be destroyed. If it is the current draw target, drawing falls
// back to the default framebuffer.
func (d *Device) DestroyFramebuffer(h Handle) error {
	if h == d.defaultFB {
		return d.validationFailed(fmt.Errorf("%w: default framebuffer cannot be destroyed", ErrInvalidHandle))
	}
	entry, err := d.registry.release(h, ResourceKindFramebuffer)
	if err != nil {
		return d.validationFailed(err)
	}
	if d.table.framebuffer == h {
		d.table.framebuffer = d.defaultFB
		d.backend.BindFramebuffer(0)
	}
	d.backend.DeleteFramebuffer(entry.native)
	return nil
}
