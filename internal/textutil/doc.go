// Package textutil provides text helpers shared by the converter: decoding of
// legacy input character sets and validation of file-name stems derived from
// input text.
package textutil
