package boardgraph

import "golang.org/x/xerrors"

// ContractError reports a contract violation per spec §7: a caller
// handed the core state it promised never to produce (a connector
// with fewer than two points, rotation applied to a zero-area shape).
// The core never mutates on such inputs; it returns this error instead
// of panicking so callers can log and abort the current gesture.
type ContractError struct {
	frame error
	msg   string
}

func (e *ContractError) Error() string { return e.msg }
func (e *ContractError) Unwrap() error { return e.frame }

func newContractError(msg string) *ContractError {
	return &ContractError{frame: xerrors.New(msg), msg: msg}
}

// RequireConnectorPoints asserts a path-like element (connector, pen,
// or laser) carries at least two points, as spec §3's connector
// invariant requires.
func RequireConnectorPoints(e *Element) error {
	if !e.Kind.IsConnector() && !e.Kind.IsPathLike() {
		return nil
	}
	if len(e.Points) < 2 {
		return newContractError(xerrors.Errorf("element %s: path-like element needs >= 2 points, got %d", e.ID, len(e.Points)).Error())
	}
	return nil
}

// RequireNonDegenerateBounds asserts a box-like element has positive
// area before a rotation is applied to it (rotating a zero-area box is
// a no-op that usually signals a caller bug upstream).
func RequireNonDegenerateBounds(e *Element) error {
	if !e.Kind.IsBoxLike() {
		return nil
	}
	if e.W <= 0 || e.H <= 0 {
		return newContractError(xerrors.Errorf("element %s: zero-area bounds (w=%v h=%v)", e.ID, e.W, e.H).Error())
	}
	return nil
}
