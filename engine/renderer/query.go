package renderer

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

// Poll interval while blocking on a query result.
const queryPollInterval = 50 * time.Microsecond

type queryResource struct {
	kind metadata.QueryKind
	// Between BeginQuery and EndQuery.
	active bool
	// A result has been requested from the device at least once.
	ended bool
}

// CreateQuery allocates a query object of the given kind.
func (d *Device) CreateQuery(kind metadata.QueryKind) (Handle, error) {
	native, err := d.backend.CreateQuery(kind)
	if err != nil {
		return NilHandle, fmt.Errorf("create query: %w", err)
	}
	return d.registry.allocate(ResourceKindQuery, native, &queryResource{kind: kind}), nil
}

// DestroyQuery releases the query. An active query is implicitly ended.
func (d *Device) DestroyQuery(h Handle) error {
	entry, err := d.registry.release(h, ResourceKindQuery)
	if err != nil {
		return d.validationFailed(err)
	}
	res := entry.payload.(*queryResource)
	if res.active {
		d.backend.EndQuery(res.kind)
		delete(d.activeQueries, res.kind)
	}
	d.backend.DeleteQuery(entry.native)
	return nil
}

// BeginQuery starts capturing into the query. Only one query per kind can
// be active at a time, and timestamp queries use WriteTimestamp instead.
func (d *Device) BeginQuery(h Handle) error {
	entry, err := d.registry.resolve(h, ResourceKindQuery)
	if err != nil {
		return d.validationFailed(err)
	}
	res := entry.payload.(*queryResource)
	if res.kind == metadata.QueryKindTimestamp {
		return d.validationFailed(fmt.Errorf("%w: timestamp queries are written, not begun", ErrUsageViolation))
	}
	if active, busy := d.activeQueries[res.kind]; busy {
		return d.validationFailed(fmt.Errorf("%w: %s is already active for this query kind",
			ErrUsageViolation, active))
	}
	d.backend.BeginQuery(entry.native, res.kind)
	d.activeQueries[res.kind] = h
	res.active = true
	return nil
}

// EndQuery stops capturing into the query. The result becomes available
// asynchronously.
func (d *Device) EndQuery(h Handle) error {
	entry, err := d.registry.resolve(h, ResourceKindQuery)
	if err != nil {
		return d.validationFailed(err)
	}
	res := entry.payload.(*queryResource)
	if !res.active || d.activeQueries[res.kind] != h {
		return d.validationFailed(fmt.Errorf("%w: query %s is not active", ErrUsageViolation, h))
	}
	d.backend.EndQuery(res.kind)
	delete(d.activeQueries, res.kind)
	res.active = false
	res.ended = true
	return nil
}

// WriteTimestamp records the device timestamp into a timestamp query once
// all prior commands have completed.
func (d *Device) WriteTimestamp(h Handle) error {
	entry, err := d.registry.resolve(h, ResourceKindQuery)
	if err != nil {
		return d.validationFailed(err)
	}
	res := entry.payload.(*queryResource)
	if res.kind != metadata.QueryKindTimestamp {
		return d.validationFailed(fmt.Errorf("%w: WriteTimestamp on a %d query", ErrUsageViolation, res.kind))
	}
	d.backend.WriteTimestamp(entry.native)
	res.ended = true
	return nil
}

// PollQueryResult returns the query result without blocking. The second
// return value reports whether the result was available.
func (d *Device) PollQueryResult(h Handle) (uint64, bool, error) {
	entry, err := d.registry.resolve(h, ResourceKindQuery)
	if err != nil {
		return 0, false, d.validationFailed(err)
	}
	res := entry.payload.(*queryResource)
	if !res.ended {
		return 0, false, d.validationFailed(fmt.Errorf("%w: query %s has no pending result",
			ErrUsageViolation, h))
	}
	if !d.backend.QueryResultAvailable(entry.native) {
		return 0, false, nil
	}
	return d.backend.QueryResult(entry.native), true, nil
}

// GetQueryResult blocks until the query result is available or the timeout
// elapses. A timeout of zero waits indefinitely.
func (d *Device) GetQueryResult(h Handle, timeout time.Duration) (uint64, error) {
	entry, err := d.registry.resolve(h, ResourceKindQuery)
	if err != nil {
		return 0, d.validationFailed(err)
	}
	res := entry.payload.(*queryResource)
	if !res.ended {
		return 0, d.validationFailed(fmt.Errorf("%w: query %s has no pending result", ErrUsageViolation, h))
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for !d.backend.QueryResultAvailable(entry.native) {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return 0, d.validationFailed(fmt.Errorf("%w: query %s after %v", ErrQueryTimeout, h, timeout))
		}
		time.Sleep(queryPollInterval)
	}
	return d.backend.QueryResult(entry.native), nil
}
