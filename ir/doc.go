// Package ir provides the intermediate representation (IR) for eon
// documents.
//
// # Overview
//
// The IR defines the core data structure for representing eon
// documents as a tree of nodes. All documents, whether parsed from
// text or created programmatically, are ir.Node trees.
//
// A Node is a recursive tagged union: the Type field selects which
// value fields are meaningful. Atomic types are null, bool, number,
// and string; composite types are list, map, and variant.
//
// # Maps
//
// For MapType nodes, Fields[i] is the key node for the value at
// Values[i], so there are always as many fields as values. Keys may
// be of any type, and entry order is the order of appearance in the
// source. Key equality is structural (Compare(a, b) == 0); note that
// integers and floats are distinct key types, so 1 and 1.0 can
// coexist in one map.
//
// # Numbers
//
// Number values are placed under exactly one of:
//   - Int64: the fast path for 64-bit signed integers
//   - Big: the rest of the 128-bit integer range [-2^127, 2^128)
//   - Float64: 64-bit IEEE floats, including +inf, -inf, and +nan
//
// The Number field additionally keeps the literal as written when the
// node came from source, so a reformat preserves hex, binary, and
// underscore spellings.
//
// # Variants
//
// VariantType nodes hold the variant name in Tag and the arguments in
// Values. A variant always has at least one argument: "Tag"() is the
// same value as the string "Tag", and NewVariant enforces the
// collapse.
//
// # Comments
//
// Comments attach to the node they describe via the Comment field:
// Leading lines above it, a Trailing remark on its line, and Closing
// lines sitting before a container's closing delimiter. Compare and
// Hash ignore comments; StripComments projects a document down to its
// pure value.
//
// # Comparison and Hashing
//
// Compare orders nodes by type rank, then value. Hash is consistent
// with Compare and uses a fixed per-process seed, so equal nodes hash
// equal anywhere in a process. Together they back duplicate-key
// detection and map-key lookup.
//
// # Thread Safety
//
// Node structures are not thread-safe. Clone nodes or synchronize
// access when sharing them across goroutines.
package ir
