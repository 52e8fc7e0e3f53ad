package accounting

import "errors"

var (
	ErrMoveNotFound   = errors.New("accounting move not found")
	ErrUnbalancedMove = errors.New("accounting move is not balanced")
)
