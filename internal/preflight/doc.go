// Package preflight provides readiness checks for the filesystem paths a
// conversion run depends on.
//
// These checks run in two contexts:
//   - The convert runner calls CheckDirectoryAccess on the output directory
//     after parsing and before writing any document, so a read-only target
//     fails fast with nothing half-written.
//   - The CLI "wadcat check" command calls RunAll to display every check,
//     including the optional hash index location.
package preflight
