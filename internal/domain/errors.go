package domain

import "fmt"

// InvalidInputError signals an invariant violation in collaborator-supplied
// data (negative stock, malformed promotion window). The engine refuses to
// compute on impossible inputs rather than coerce them.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// EmptySelectionError is returned when order materialization is asked to
// build an order from a selection with no restockable lines.
type EmptySelectionError struct {
	SupplierID string
}

func (e *EmptySelectionError) Error() string {
	if e.SupplierID == "" {
		return "no items require restocking"
	}
	return fmt.Sprintf("no items require restocking for supplier %s", e.SupplierID)
}
