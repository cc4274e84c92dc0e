package document

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/tidwall/pretty"

	"media-relinker/internal/apperrors"
)

const filePerm = 0o644

// outputOptions indents by four spaces and keeps every array element on its
// own line (Width 0 disables single-line arrays).
var outputOptions = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "    ",
	SortKeys: false,
}

// Encode renders items as an indented JSON object in the given order.
// Values are written in Canonical form.
func Encode(items []Item) []byte {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, it := range items {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.Write(Quote(it.Key))
		buf.WriteByte(':')
		buf.Write(Canonical(it.Value))
	}

	buf.WriteByte('}')

	return bytes.TrimSuffix(pretty.PrettyOptions(buf.Bytes(), outputOptions), []byte("\n"))
}

// WriteFile encodes items and writes them to path, replacing any existing file.
func WriteFile(path string, items []Item) error {
	if err := os.WriteFile(path, Encode(items), filePerm); err != nil {
		return &apperrors.IOError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// Quote returns s as a JSON string literal. Only the characters JSON
// requires are escaped; <, > and & are written as-is.
func Quote(s string) []byte {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string never fails.
	_ = enc.Encode(s)

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}
