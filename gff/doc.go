// Package gff provides the in-memory representation for GFF resources.
//
// # Overview
//
// A GFF resource is a tree of typed, labeled fields rooted at a top-level
// struct. The package defines the core data structures the patch engine
// mutates: every tree, whether decoded from a binary resource or built
// programmatically, is represented as a *Node tree.
//
// The representation is a recursive tagged union: values live in fields of
// Node selected by the node's Type. Nodes keep parent links so any node can
// report its full path, which the engine uses both for addressing and for
// storing path tokens.
//
// Binary encoding and decoding is deliberately outside this package; the
// engine receives already-decoded trees from its resource store.
//
// # Node Types
//
// Atomic kinds carry a single value (integers, floats, strings, resource
// references, binary blobs). Three kinds are composite or otherwise special:
//
//   - StructType: labeled child fields plus a caller-defined type id
//   - ListType: ordered anonymous structs
//   - LocStringType: a string reference plus per-language substrings
//
// Orientation and Position are three-component float vectors set atomically.
package gff
