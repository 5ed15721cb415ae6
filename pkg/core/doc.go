// Package core defines the shared types of hrdash: the typed dataset schema,
// the immutable employee table, filter selections, aggregate tables and
// summary metrics.
//
// Everything downstream of the loader works on these types. Columns and
// grouping dimensions are enums rather than strings, so a reference to a
// column that does not exist is caught by the compiler or, for values that
// arrive as text (flags, config, HTTP), by ParseDimension at a single
// boundary.
package core
