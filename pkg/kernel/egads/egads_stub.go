//go:build !egads

// Package egads provides a CGo-based geometry kernel binding to EGADS from
// the Engineering Sketch Pad. When the "egads" build tag is not set, this
// stub package is compiled instead, returning an error from New().
//
// Build with: go build -tags=egads
package egads

import (
	"errors"

	"github.com/chazu/wingbox/pkg/kernel"
)

// New returns an error indicating EGADS is not available.
// Build with -tags=egads to enable.
func New() (kernel.Kernel, error) {
	return nil, errors.New("egads kernel not available: build with -tags=egads")
}
