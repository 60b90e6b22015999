// Package ir provides the typed intermediate representation between the
// directive model and the emitters.
//
// Pipeline position:
//
//	directive.Check → ir.Build → ir.Validate → internal/gen
//
// Build applies the default-inference rules (identity converter,
// self-conversion, verbatim via, getter defaulting) and produces a
// TypeSpec. Validate checks the semantic constraints, marks per-field
// reconstructability, and freezes the result into a Table. Both emitters
// read the same Table; no emission decision re-derives defaults.
package ir
