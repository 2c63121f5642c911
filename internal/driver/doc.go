// Package driver runs the annotation pipeline over a fixture file or a
// directory of fixtures: load, replay in parallel, merge in path order,
// render.
package driver
