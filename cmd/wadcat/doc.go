// Package main hosts the wadcat CLI entrypoint and command graph.
//
// Running wadcat with no subcommand converts the configured hash listing
// into one JSON document per locale code, printing a progress line for each
// file it writes. Subcommands resolve hashes through the optional SQLite
// index, run readiness checks, and scaffold configuration.
//
// Keep this package lean: conversion logic lives in internal/convert and
// internal/catalog; commands here only resolve configuration, build the
// logger, and render results.
package main
