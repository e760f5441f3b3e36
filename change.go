package gimbal

// ChangeOp identifies the operation that produced a change.
type ChangeOp int

const (
	// OpSet is a single-field write through one of the setters.
	OpSet ChangeOp = iota
	// OpUpdate is a batched multi-field update.
	OpUpdate
	// OpReset is a reset back to the initial snapshot.
	OpReset
)

// String returns the string representation of the operation.
func (op ChangeOp) String() string {
	switch op {
	case OpSet:
		return "set"
	case OpUpdate:
		return "update"
	case OpReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change carries an accepted mutation through the middleware pipeline.
// It exposes both the outgoing and the incoming snapshot so middleware can
// make decisions based on what changed.
type Change struct {
	// Op is the operation that produced this change.
	Op ChangeOp

	// Previous is the snapshot being replaced.
	Previous ViewState

	// Current is the snapshot about to be committed. Middleware may
	// adjust it (clamping, wrapping) before it is stored and published.
	Current ViewState
}
