// Package table provides the tabular dataset exchanged between datarails steps.
//
// A Table is an ordered set of named, typed columns of equal length. Rows are
// addressed by position and columns by name. Tables are values in spirit: the
// transforming methods (Slice, Filter, AsType, Concat) return a new Table and leave
// the receiver untouched.
//
// Missing values are represented by nil. Casting an empty string to a numeric or
// boolean kind yields a missing value, and missing values compare false in
// predicates.
package table
