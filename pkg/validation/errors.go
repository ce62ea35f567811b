package validation

import "errors"

// Sentinel errors raised at the topology boundary. The analysis engine
// assumes validated input; these are the precondition violations callers
// must handle before invoking it.
var (
	// ErrUnknownNodeReference indicates a link whose source or target does
	// not name an existing node.
	ErrUnknownNodeReference = errors.New("validation: link references unknown node")

	// ErrNonPositiveCost indicates a link cost that is zero or negative.
	ErrNonPositiveCost = errors.New("validation: link cost must be positive")

	// ErrDuplicateNodeID indicates two nodes sharing the same id.
	ErrDuplicateNodeID = errors.New("validation: duplicate node id")

	// ErrDuplicateLinkID indicates two links sharing the same id.
	ErrDuplicateLinkID = errors.New("validation: duplicate link id")

	// ErrDuplicateDirectedEdge indicates two links producing the same
	// ordered endpoint pair, under the reject merge policy.
	ErrDuplicateDirectedEdge = errors.New("validation: duplicate directed edge")
)
