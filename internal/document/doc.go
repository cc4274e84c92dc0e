// Package document loads, inspects and writes the media index JSON file.
//
// The document is a JSON object mapping an identifier (usually a post URL)
// to an entry object. Entries are kept as raw JSON so that fields this
// program does not know about, and the order of every key, survive a
// load/write round trip untouched. Only the fields named by the Field
// constants are ever decoded.
//
// Loading is split in two steps so a caller can act between them:
//
//	doc, err := document.LoadFile("input.json") // NotFoundError, ParseError, IOError
//	items, err := doc.Items()                    // ValidationError unless an object
//
// The output is written by WriteFile with four-space indentation, one
// element per line, and non-ASCII text left as-is.
package document
