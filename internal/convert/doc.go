// Package convert runs one end-to-end conversion: parse the configured
// listing into a catalog, write one JSON document per code into the output
// directory, and optionally refresh the SQLite hash index.
//
// Nothing is written when parsing fails or any code is unusable as a file
// name. The output directory is locked for the duration of the writes when
// output.lock is enabled.
package convert
