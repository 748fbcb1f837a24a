// Package table implements the filter, sort and paginate pipeline behind the
// console's list views. Every stage is a pure function of its inputs: the
// input slice is never mutated and the view state is an immutable value.
package table
