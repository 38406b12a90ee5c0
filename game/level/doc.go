// Package level provides the puzzle level catalog.
//
// A level is an immutable width x height grid encoded as a flat cell
// string, where 'X' marks a permanently blocked cell and any other
// character an open one. The Catalog offers lookup by integer ID and
// ordered enumeration; it is loaded once at startup, either from an
// external JSON file or from the embedded classic set.
package level
