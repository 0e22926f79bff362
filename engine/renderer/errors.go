package renderer

import "errors"

// Caller-observable error categories. Every validation failure wraps one of
// these sentinels; callers are expected to test with errors.Is.
var (
	// A handle that was never issued, or was already released.
	ErrInvalidHandle = errors.New("invalid handle")
	// A format outside the supported enumerated set.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// A creation parameter beyond the captured device limits.
	ErrLimitExceeded = errors.New("limit exceeded")
	// A pipeline stage combination outside the closed variants.
	ErrIncompleteStageSet = errors.New("incomplete stage set")
	// Framebuffer attachments with mismatched dimensions or sample counts.
	ErrInvalidAttachmentSet = errors.New("invalid attachment set")
	// The bound vertex layout cannot satisfy the bound pipeline's inputs.
	ErrIncompatibleVertexLayout = errors.New("incompatible vertex layout")
	// A draw or dispatch issued with no pipeline bound.
	ErrNoPipelineBound = errors.New("no pipeline bound")
	// A binding slot at or beyond the limit for its kind.
	ErrSlotOutOfRange = errors.New("slot out of range")
	// A copy or clear region outside the resource dimensions.
	ErrOutOfBounds = errors.New("out of bounds")
	// A resource bound for a purpose its creation-time usage does not cover.
	ErrUsageViolation = errors.New("usage violation")
	// Blocking query retrieval exceeded its timeout.
	ErrQueryTimeout = errors.New("query timeout")
)
