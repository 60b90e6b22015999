// Package diagnostic provides structured errors, warnings, and infos
// produced while compiling mirror specifications into adapters.
//
// Key capabilities:
//   - Stable codes per failure kind (missing remote type, getter misuse, ...)
//   - Mirror and field context on every entry
//   - Per-mirror accumulation so one failing mirror never hides its siblings
package diagnostic
