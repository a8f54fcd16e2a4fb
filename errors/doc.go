// Package errors provides structured error types for the collection
// bridge boundary.
//
// Errors carry a Phase (where in a guest call the failure occurred)
// and a Kind (what went wrong), so hosts can branch on the category
// with errors.Is instead of matching message strings:
//
//	target := &errors.Error{Phase: errors.PhaseLift, Kind: errors.KindInvalidData}
//	if stderrors.Is(err, target) { ... }
//
// Data-level absence (missing key, out-of-range index) is never an
// error anywhere in the bridge; this package covers genuine boundary
// failures such as unreadable guest memory or an unknown value tag.
package errors
