package document

import (
	"bytes"

	"github.com/tidwall/gjson"

	"media-relinker/internal/common"
)

// Entry field names.
const (
	FieldLocalMediaPath = "local_media_path"
	FieldURLList        = "url_list"
	FieldMediaDetails   = "media_details"
	FieldURL            = "url"
	FieldThumbnail      = "thumbnail"
)

// Entry is a document member whose value is a JSON object, with the fields
// that drive a rewrite decoded into optional values.
type Entry struct {
	// LocalMediaPath is nil when the entry has no local_media_path.
	// Non-string values are held in their text form; null is "".
	LocalMediaPath *string
	// URLListLen is the length of url_list, or 0 when it is absent or not an array.
	URLListLen int
	// Media describes media_details[0]. It is nil unless media_details is
	// a non-empty array whose first element is an object.
	Media *Media

	raw           []byte
	localPathJSON []byte
}

// Media records which fields media_details[0] carries.
type Media struct {
	HasURL       bool
	HasThumbnail bool
}

// DecodeEntry decodes raw as an Entry. It returns false when raw is not a
// JSON object. The entry keeps raw in Canonical form, so a repeated field
// is seen once, with its last value.
func DecodeEntry(raw []byte) (Entry, bool) {
	if !gjson.ValidBytes(raw) {
		return Entry{}, false
	}

	canon := Canonical(raw)

	res := gjson.ParseBytes(canon)
	if !res.IsObject() {
		return Entry{}, false
	}

	e := Entry{raw: canon}

	if v := res.Get(FieldLocalMediaPath); v.Exists() {
		s := v.String()
		e.LocalMediaPath = &s
		e.localPathJSON = []byte(v.Raw)
	}

	if v := res.Get(FieldURLList); v.IsArray() {
		e.URLListLen = len(v.Array())
	}

	if v := res.Get(FieldMediaDetails); v.IsArray() {
		if first, ok := common.First(v.Array()); ok && first.IsObject() {
			e.Media = &Media{
				HasURL:       first.Get(FieldURL).Exists(),
				HasThumbnail: first.Get(FieldThumbnail).Exists(),
			}
		}
	}

	return e, true
}

// Raw returns a copy of the entry's JSON.
func (e Entry) Raw() []byte {
	return bytes.Clone(e.raw)
}

// LocalMediaPathJSON returns the local_media_path value as JSON, or nil
// when the entry has none. Unlike LocalMediaPath it keeps the value's type.
func (e Entry) LocalMediaPathJSON() []byte {
	return bytes.Clone(e.localPathJSON)
}

// Qualifies reports whether the entry is subject to a rewrite.
func (e Entry) Qualifies() bool {
	return e.LocalMediaPath != nil
}
