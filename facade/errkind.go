package facade

import (
	"errors"

	"github.com/sagsin-net/heuristic/graphmodel"
	"github.com/sagsin-net/heuristic/routing"
)

// ErrKind classifies an internal sentinel error into one of the
// transport-facing kinds of spec §7. The facade is the only component
// that performs this mapping; every other package keeps its own
// sentinels private to errors.Is comparisons.
type ErrKind string

const (
	KindInvalidArgument ErrKind = "InvalidArgument"
	KindNotFound        ErrKind = "NotFound"
	KindNoPath          ErrKind = "NoPath"
	KindTransient       ErrKind = "Transient"
	KindInternal        ErrKind = "Internal"
)

// Classify maps err to its external ErrKind. A nil err has no kind;
// callers must check err != nil first. Errors that match none of the
// known sentinels are classified Internal, per spec §7's "unexpected
// exception inside an algorithm" case.
func Classify(err error) ErrKind {
	switch {
	case errors.Is(err, routing.ErrInvalidAlgorithm):
		return KindInvalidArgument
	case errors.Is(err, graphmodel.ErrBadTimestamp):
		return KindTransient
	default:
		return KindInternal
	}
}
