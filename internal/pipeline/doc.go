// Package pipeline orchestrates the per-mirror compilation:
//
//	directive.Check → ir.Build → ir.Validate → gen emitters
//
// Every mirror runs independently: diagnostics accumulate per mirror and
// a failure in one never aborts its siblings. The transformation is
// deterministic and idempotent; identical input yields byte-identical
// emitted files.
package pipeline
