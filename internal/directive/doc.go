// Package directive holds the raw directive model for mirror types.
//
// Input arrives as already-tokenized key/value argument lists, either
// built programmatically or loaded from a YAML mirror-spec file. Check
// performs syntax validation only (unknown keys, wrong arity, duplicate
// keys, malformed type and function references); semantic rules such as
// remote-type presence belong to the validator in internal/ir.
//
// Directive vocabulary:
//
//	type level:  remotes(T1, T2, ...)
//	field level: from(T), via(C), getter(F), getter_owned
//
// A syntax failure halts processing of the enclosing mirror only.
package directive
