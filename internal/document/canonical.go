package document

import (
	"github.com/tidwall/gjson"
)

// Canonical re-emits raw as compact JSON the way a decode/encode round trip
// would: every key and string is re-quoted by Quote, so escapes such as
// \u00e9 or \/ become literal text, and a key repeated within one object
// keeps its first position with its last value. Numbers, booleans and null
// are copied unchanged. raw must be valid JSON.
func Canonical(raw []byte) []byte {
	return appendCanonical(nil, gjson.ParseBytes(raw))
}

type member struct {
	key   string
	value gjson.Result
}

// members returns the members of an object with repeated keys collapsed.
func members(obj gjson.Result) []member {
	var (
		out   []member
		index = map[string]int{}
	)

	obj.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if i, ok := index[k]; ok {
			out[i].value = value
			return true
		}

		index[k] = len(out)
		out = append(out, member{key: k, value: value})

		return true
	})

	return out
}

func appendCanonical(buf []byte, r gjson.Result) []byte {
	switch {
	case r.IsObject():
		buf = append(buf, '{')

		for i, m := range members(r) {
			if i > 0 {
				buf = append(buf, ',')
			}

			buf = append(buf, Quote(m.key)...)
			buf = append(buf, ':')
			buf = appendCanonical(buf, m.value)
		}

		return append(buf, '}')
	case r.IsArray():
		buf = append(buf, '[')
		first := true

		r.ForEach(func(_, value gjson.Result) bool {
			if !first {
				buf = append(buf, ',')
			}

			first = false
			buf = appendCanonical(buf, value)

			return true
		})

		return append(buf, ']')
	case r.Type == gjson.String:
		return append(buf, Quote(r.String())...)
	default:
		return append(buf, r.Raw...)
	}
}
