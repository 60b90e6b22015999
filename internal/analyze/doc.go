// Package analyze provides package loading and mirror declaration extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to build an
// in-memory model of the mirror structs: field names and rendered field
// types, in declaration order. Remote types are never introspected; the
// generator trusts the declared correspondence.
//
// Key types:
//   - TypePath: package import path + type name (or rendered composite)
//   - FuncPath: package import path + function name
//   - MirrorDecl: one mirror struct declaration
package analyze
