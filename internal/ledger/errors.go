package ledger

import "errors"

var (
	// ErrStoreWrite signals that persisting the materialized instances of a
	// pipeline pass failed. The pass is aborted and nothing is persisted.
	ErrStoreWrite = errors.New("persisting the pipeline results failed")

	errTemplateAnchorZero = errors.New("the template has no anchor date")
)
