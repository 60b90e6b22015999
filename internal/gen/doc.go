// Package gen provides deterministic Go code generation for mirror
// adapters.
//
// Generation approach uses text/template + go/format. Two independent
// emitters consume the same validated field mapping table:
//
//   - the archive/serialize emitter produces one representation +
//     resolver unit per mirror and one serialize/build unit per
//     (mirror, remote) pair;
//   - the deserialize emitter produces at most one unit per mirror,
//     only when the table is fully reconstructable.
//
// Output is byte-identical across runs for identical tables.
package gen
