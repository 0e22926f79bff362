package renderer

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/ignis/engine/core"
)

// PushDebugGroup opens a nested annotation scope in native capture tools.
// An empty label is replaced with a generated one; the label in effect is
// returned.
func (d *Device) PushDebugGroup(label string) string {
	if label == "" {
		label = "group-" + uuid.NewString()
	}
	d.backend.PushDebugGroup(label)
	d.groupDepth++
	return label
}

// PopDebugGroup closes the innermost annotation scope. Unbalanced pops are
// ignored.
func (d *Device) PopDebugGroup() {
	if d.groupDepth == 0 {
		core.LogWarn("unbalanced debug group pop")
		return
	}
	d.groupDepth--
	d.backend.PopDebugGroup()
}

// InsertDebugMarker drops a single annotation into the command stream.
func (d *Device) InsertDebugMarker(message string) {
	d.backend.InsertDebugMarker(message)
}

// SetObjectLabel attaches a human readable name to a native object for
// capture tools. An empty label is replaced with a generated one; the
// label applied is returned.
func (d *Device) SetObjectLabel(h Handle, label string) (string, error) {
	entry, err := d.registry.resolve(h, h.Kind())
	if err != nil {
		return "", d.validationFailed(err)
	}
	if label == "" {
		label = h.Kind().String() + "-" + uuid.NewString()
	}
	d.backend.LabelObject(h.Kind(), entry.native, label)
	return label, nil
}
