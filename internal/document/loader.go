package document

import (
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"media-relinker/internal/apperrors"
)

// Document is a parsed JSON file.
type Document struct {
	// Path is where the document was read from. Used in error messages.
	Path string
	root gjson.Result
	size int
}

// Item is one member of the top-level object.
type Item struct {
	// Key is the decoded member name.
	Key string
	// Value is the member value in Canonical form.
	Value []byte
}

// LoadFile loads and parses a JSON document from the given path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &apperrors.NotFoundError{Path: path, Err: err}
		}

		return nil, &apperrors.IOError{Op: "read", Path: path, Err: err}
	}

	return Parse(path, data)
}

// Parse parses JSON data. path is only used to label errors.
// data must be UTF-8.
func Parse(path string, data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, &apperrors.ParseError{Path: path, Err: apperrors.ErrInvalidUTF8}
	}

	if !gjson.ValidBytes(data) {
		return nil, &apperrors.ParseError{Path: path, Err: apperrors.ErrMalformed}
	}

	return &Document{
		Path: path,
		root: gjson.ParseBytes(data),
		size: len(data),
	}, nil
}

// Size returns the length in bytes of the parsed input.
func (d *Document) Size() int {
	return d.size
}

// Items returns the members of the top-level object in input order.
// A key that appears more than once yields one item, at the position of
// its first occurrence, holding the value of its last.
// A document whose top level is not an object yields a ValidationError.
func (d *Document) Items() ([]Item, error) {
	if !d.root.IsObject() {
		return nil, &apperrors.ValidationError{
			Path: d.Path,
			Kind: kindOf(d.root),
			Err:  apperrors.ErrNotObject,
		}
	}

	ms := members(d.root)
	items := make([]Item, 0, len(ms))

	for _, m := range ms {
		items = append(items, Item{
			Key:   m.key,
			Value: appendCanonical(nil, m.value),
		})
	}

	return items, nil
}

func kindOf(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	case gjson.JSON:
		if r.IsArray() {
			return "array"
		}

		return "object"
	default:
		return "unknown"
	}
}
