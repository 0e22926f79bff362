package renderer

import (
	"fmt"
	"sync"
)

// ResourceKind tags a handle with the type of native object it refers to.
type ResourceKind uint8

const (
	ResourceKindNone ResourceKind = iota
	ResourceKindBuffer
	ResourceKindImage
	ResourceKindSampler
	ResourceKindFramebuffer
	ResourceKindVertexLayout
	ResourceKindShader
	ResourceKindPipeline
	ResourceKindQuery
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceKindBuffer:
		return "buffer"
	case ResourceKindImage:
		return "image"
	case ResourceKindSampler:
		return "sampler"
	case ResourceKindFramebuffer:
		return "framebuffer"
	case ResourceKindVertexLayout:
		return "vertex layout"
	case ResourceKindShader:
		return "shader"
	case ResourceKindPipeline:
		return "pipeline"
	case ResourceKindQuery:
		return "query"
	}
	return "none"
}

// Handle is an opaque, copyable identifier for a native GPU object. It does
// not own the backing memory; it is only valid between the creation call
// that returned it and the matching destroy call. The zero Handle is nil.
type Handle struct {
	index      uint32
	generation uint32
	kind       ResourceKind
}

// NilHandle is the zero handle; it never refers to a live resource.
var NilHandle = Handle{}

// Kind returns the resource kind the handle was issued for.
func (h Handle) Kind() ResourceKind { return h.kind }

// IsNil reports whether the handle is the zero handle.
func (h Handle) IsNil() bool { return h.kind == ResourceKindNone }

func (h Handle) String() string {
	if h.IsNil() {
		return "handle(nil)"
	}
	return fmt.Sprintf("handle(%s %d.%d)", h.kind, h.index, h.generation)
}

// resourceEntry is one arena slot of the registry.
type resourceEntry struct {
	generation uint32
	live       bool
	kind       ResourceKind
	// Identifier of the native object behind the handle.
	native uint32
	// Kind-specific creation-time attributes, fixed for the entry lifetime.
	payload any
}

// registry issues handles and owns the handle -> native identity mapping.
// Slots are recycled through a free list; the generation counter is bumped
// on release so a stale handle can never alias the slot's next occupant.
// Allocation is mutex-guarded since registries may be shared; everything
// else is called from the single submission goroutine of a device.
type registry struct {
	mu      sync.Mutex
	entries []resourceEntry
	free    []uint32
}

func newRegistry() *registry {
	return &registry{}
}

// allocate reserves a slot and returns the handle for it.
func (r *registry) allocate(kind ResourceKind, native uint32, payload any) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.entries = append(r.entries, resourceEntry{})
		index = uint32(len(r.entries) - 1)
	}

	entry := &r.entries[index]
	entry.live = true
	entry.kind = kind
	entry.native = native
	entry.payload = payload

	return Handle{index: index, generation: entry.generation, kind: kind}
}

// resolve returns the entry for a live handle of the expected kind.
func (r *registry) resolve(h Handle, kind ResourceKind) (*resourceEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.kind != kind || int(h.index) >= len(r.entries) {
		return nil, fmt.Errorf("%w: %s is not a live %s", ErrInvalidHandle, h, kind)
	}
	entry := &r.entries[h.index]
	if !entry.live || entry.generation != h.generation || entry.kind != kind {
		return nil, fmt.Errorf("%w: %s is not a live %s", ErrInvalidHandle, h, kind)
	}
	return entry, nil
}

// release invalidates a handle and returns its final entry state. Releasing
// twice, or releasing a handle of the wrong kind, fails with ErrInvalidHandle.
func (r *registry) release(h Handle, kind ResourceKind) (resourceEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.kind != kind || int(h.index) >= len(r.entries) {
		return resourceEntry{}, fmt.Errorf("%w: %s is not a live %s", ErrInvalidHandle, h, kind)
	}
	entry := &r.entries[h.index]
	if !entry.live || entry.generation != h.generation || entry.kind != kind {
		return resourceEntry{}, fmt.Errorf("%w: %s is not a live %s", ErrInvalidHandle, h, kind)
	}

	released := *entry
	entry.live = false
	entry.generation++
	entry.payload = nil
	r.free = append(r.free, h.index)
	return released, nil
}

// forEach visits every live entry of a kind.
func (r *registry) forEach(kind ResourceKind, fn func(entry *resourceEntry)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].live && r.entries[i].kind == kind {
			fn(&r.entries[i])
		}
	}
}

// liveCount reports how many slots are currently occupied.
func (r *registry) liveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for i := range r.entries {
		if r.entries[i].live {
			count++
		}
	}
	return count
}
