package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolveLive(t *testing.T) {
	r := newRegistry()
	h := r.allocate(ResourceKindBuffer, 42, &bufferResource{size: 16})

	entry, err := r.resolve(h, ResourceKindBuffer)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), entry.native)
}

func TestRegistryResolveWrongKind(t *testing.T) {
	r := newRegistry()
	h := r.allocate(ResourceKindBuffer, 1, nil)

	_, err := r.resolve(h, ResourceKindImage)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestRegistryReleaseInvalidatesHandle(t *testing.T) {
	r := newRegistry()
	h := r.allocate(ResourceKindBuffer, 1, nil)

	_, err := r.release(h, ResourceKindBuffer)
	require.NoError(t, err)

	_, err = r.resolve(h, ResourceKindBuffer)
	assert.ErrorIs(t, err, ErrInvalidHandle)

	_, err = r.release(h, ResourceKindBuffer)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestRegistrySlotReuseBumpsGeneration(t *testing.T) {
	r := newRegistry()
	old := r.allocate(ResourceKindBuffer, 1, nil)
	_, err := r.release(old, ResourceKindBuffer)
	require.NoError(t, err)

	// The freed slot is recycled for the next allocation.
	fresh := r.allocate(ResourceKindBuffer, 2, nil)
	require.Equal(t, old.index, fresh.index)
	require.NotEqual(t, old.generation, fresh.generation)

	// The stale handle must not alias the new occupant.
	_, err = r.resolve(old, ResourceKindBuffer)
	assert.ErrorIs(t, err, ErrInvalidHandle)

	entry, err := r.resolve(fresh, ResourceKindBuffer)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), entry.native)
}

func TestRegistryLiveCount(t *testing.T) {
	r := newRegistry()
	a := r.allocate(ResourceKindBuffer, 1, nil)
	b := r.allocate(ResourceKindImage, 2, nil)
	assert.Equal(t, 2, r.liveCount())

	_, err := r.release(a, ResourceKindBuffer)
	require.NoError(t, err)
	assert.Equal(t, 1, r.liveCount())

	_, err = r.release(b, ResourceKindImage)
	require.NoError(t, err)
	assert.Equal(t, 0, r.liveCount())
}

func TestNilHandle(t *testing.T) {
	assert.True(t, NilHandle.IsNil())
	assert.Equal(t, ResourceKindNone, NilHandle.Kind())

	r := newRegistry()
	_, err := r.resolve(NilHandle, ResourceKindBuffer)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}
