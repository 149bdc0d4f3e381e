// Package logging assembles structured slog loggers used across wadcat.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and stamps every record with the run identifier so lines from one
// conversion can be grouped in a shared log file. Standard output is left to
// the converter's progress lines; logs go to stderr and an optional file.
//
// Prefer these constructors over hand-rolled slog setup so components emit
// data with the same shape.
package logging
