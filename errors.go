package md2post

import "errors"

// Sentinel errors for library operations.
var (
	// Math subprocess pipeline errors.
	ErrTypeset        = errors.New("latex typesetting failed")
	ErrTypesetTimeout = errors.New("external typesetting command timed out")
	ErrMissingDVI     = errors.New("typesetter produced no DVI output")
	ErrSVGConversion  = errors.New("DVI to SVG conversion failed")

	// Template validation errors.
	ErrMissingContentPlaceholder = errors.New("template is missing {{content}} placeholder")
)
