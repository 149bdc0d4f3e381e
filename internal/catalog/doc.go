// Package catalog turns a flat hash listing into per-code archive documents.
//
// The input is a sequence of header lines (`# <code>-<name>/<path>`) each
// followed by record lines (`<hash-hex>,<confidence>,...,<filename>`). A
// Grouper consumes the lines in a single forward pass, collecting records into
// the wad opened by the preceding header and attaching every finished wad to
// the CodeGroup of its own code. WriteDocuments then serializes each group to
// `<code>.json` for downstream hash-to-filename resolvers.
//
// Every parse failure is fatal to the run and is reported as a *ParseError
// wrapping one of the package sentinels, so callers can branch with errors.Is.
package catalog
