// Package entity compiles declared resource definitions into normalized,
// validated payloads for the management API.
//
// A Descriptor holds one declared resource: its schema name, its field
// values, and the base descriptors it extends. Compile merges the base
// chain, validates each field against the schema's descriptors, applies the
// schema's compile hook if one is declared, and returns an ordered Fields
// mapping that is self-contained and transport-ready.
//
// The Registry maps schema names to field descriptors and hooks. It is
// populated once at startup (Default builds the built-in set behind a
// sync.Once barrier) and read-only afterwards, so concurrent compiles need
// no locking.
//
// Assemble and AssembleCredentialProvider wrap compiled mappings in the
// request envelope the API expects; credential provider accounts decompose
// into a provider, resource type, and account payload with an explicit
// creation order. The Stamper assigns unique identifiers to nested list
// elements and attaches the secret marker the API requires next to any
// secret value supplied at compile time.
//
// Compilation is pure and synchronous: no I/O, no retries, no partial
// output. Loading definitions and transmitting payloads are collaborator
// concerns, see the internal/loader and internal/client packages.
package entity
