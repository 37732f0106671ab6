// Package logging defines the structured Logger used across bigcalc and its
// zerolog-backed implementation.
package logging
