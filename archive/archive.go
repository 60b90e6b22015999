// Package archive defines the contracts of the two-phase binary
// archiving protocol that generated adapters compile against.
//
// The protocol archives a value in two steps: Serialize writes any
// out-of-line bytes and returns an opaque resolver token, then Build
// finalizes the in-line archived representation at a known position
// using that token. Deserialize reverses the process with a shared
// reconstruction context. The byte layout itself belongs to the
// archiving library; this package only fixes the shapes the generated
// code must satisfy.
package archive

import "io"

// Pos is a position within the archive, relative to its start.
type Pos uint64

// Resolver is the opaque intermediate token produced by Serialize and
// consumed by Build.
type Resolver uint64

// Serializer is the byte-writing half of the protocol. Pos reports the
// current write position, used to finalize representations.
type Serializer interface {
	io.Writer

	// Pos returns the number of bytes written so far.
	Pos() Pos
}

// Deserializer carries shared state needed while reconstructing values,
// such as previously materialized shared allocations.
type Deserializer interface {
	// Shared returns the value materialized earlier at pos, if any.
	Shared(pos Pos) (any, bool)

	// AddShared records a materialized value for pos.
	AddShared(pos Pos, v any)
}

// Converter knows how to carry one field value of type T across the
// archive boundary, with A as its archived representation. Serialize and
// Build are always invoked as a pair, serialize first.
type Converter[T, A any] interface {
	// Serialize writes any out-of-line bytes for the field and returns
	// the resolver token Build consumes.
	Serialize(field *T, s Serializer) (Resolver, error)

	// Build finalizes the archived representation of the field at pos,
	// writing into out. It never fails; failures belong to Serialize.
	Build(field *T, pos Pos, resolver Resolver, out *A)

	// Deserialize reconstructs the field value from its archived
	// representation.
	Deserialize(archived *A, d Deserializer) (T, error)
}

// Identity is the no-op converter for directly representable fields:
// the archived representation is the value itself.
type Identity[T any] struct{}

// Serialize writes nothing and resolves to the current position.
func (Identity[T]) Serialize(field *T, s Serializer) (Resolver, error) {
	return Resolver(s.Pos()), nil
}

// Build copies the value into the representation slot.
func (Identity[T]) Build(field *T, _ Pos, _ Resolver, out *T) {
	*out = *field
}

// Deserialize copies the value back out of the representation slot.
func (Identity[T]) Deserialize(archived *T, _ Deserializer) (T, error) {
	return *archived, nil
}

// With marks a field of a containing aggregate as serialized through the
// converter C instead of its own representation. It is the hookup point
// between ordinary serialization of other types and generated adapters.
type With[T, C any] struct {
	Value T
}

// Wrap wraps a value for conversion through C.
func Wrap[T, C any](v T) With[T, C] {
	return With[T, C]{Value: v}
}
