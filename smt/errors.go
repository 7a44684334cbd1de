package smt

import (
	"fmt"

	"github.com/FuelLabs/fuel-merkle/digest"
)

// LoadError is returned by Load when the supplied root digest is not
// present in storage and is not the placeholder/empty constant.
type LoadError struct {
	Root digest.Digest
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("smt: root %x not found in storage", e.Root)
}
