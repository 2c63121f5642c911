// Package diagfmt renders diagnostic bags for people (Pretty) and tools
// (JSON). Golden and short line formats live in package diag.
package diagfmt
