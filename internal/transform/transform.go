package transform

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"media-relinker/internal/diagnostic"
	"media-relinker/internal/document"
)

// sjson paths and the display names used in Changes.
const (
	pathURLList0       = document.FieldURLList + ".0"
	pathMediaURL       = document.FieldMediaDetails + ".0." + document.FieldURL
	pathMediaThumbnail = document.FieldMediaDetails + ".0." + document.FieldThumbnail

	FieldURLList0       = "url_list[0]"
	FieldMediaURL       = "media_details[0].url"
	FieldMediaThumbnail = "media_details[0].thumbnail"
)

// Info codes for rules that did not fire.
const (
	CodeURLListSkipped   = "url_list_skipped"
	CodeMediaURLSkipped  = "media_url_skipped"
	CodeThumbnailSkipped = "thumbnail_skipped"
)

var (
	errNotObject   = errors.New("rewritten entry is not a JSON object")
	errNoLocalPath = errors.New("entry has no local_media_path")
)

// Result is the outcome of Apply.
type Result struct {
	// Entry is the rewritten entry. The input entry is left unchanged.
	Entry       document.Entry
	Changes     []Change
	Diagnostics diagnostic.Diagnostics
}

// Updated reports whether any URL field was replaced.
func (r *Result) Updated() bool {
	return r.has(ActionUpdated)
}

// Removed reports whether any field was deleted.
func (r *Result) Removed() bool {
	return r.has(ActionRemoved)
}

func (r *Result) has(a Action) bool {
	for _, c := range r.Changes {
		if c.Action == a {
			return true
		}
	}

	return false
}

func (r *Result) record(a Action, field string) {
	r.Changes = append(r.Changes, Change{Action: a, Field: field})
}

// Apply rewrites entry to point at localPath and returns the new entry.
// An error is only returned if the entry JSON cannot be edited, which
// cannot happen for an entry produced by document.DecodeEntry.
func Apply(entry document.Entry, localPath string) (Result, error) {
	return apply(entry, document.Quote(localPath))
}

// ApplyLocal rewrites entry with its own local_media_path value. The value
// is written with its JSON type, so a null or numeric path stays one.
func ApplyLocal(entry document.Entry) (Result, error) {
	value := entry.LocalMediaPathJSON()
	if value == nil {
		return Result{}, errNoLocalPath
	}

	return apply(entry, value)
}

// apply rewrites entry with value, a JSON literal.
func apply(entry document.Entry, value []byte) (Result, error) {
	var (
		res Result
		err error
		raw = entry.Raw()
	)

	if entry.URLListLen > 0 {
		if raw, err = sjson.SetRawBytes(raw, pathURLList0, value); err != nil {
			return Result{}, fmt.Errorf("set %s: %w", FieldURLList0, err)
		}

		res.record(ActionUpdated, FieldURLList0)
	} else {
		res.Diagnostics.AddInfo(CodeURLListSkipped,
			"url_list is absent, not an array, or empty", "", document.FieldURLList)
	}

	if m := entry.Media; m != nil {
		if m.HasURL {
			if raw, err = sjson.SetRawBytes(raw, pathMediaURL, value); err != nil {
				return Result{}, fmt.Errorf("set %s: %w", FieldMediaURL, err)
			}

			res.record(ActionUpdated, FieldMediaURL)
		} else {
			res.Diagnostics.AddInfo(CodeMediaURLSkipped, "media_details[0] has no url", "", FieldMediaURL)
		}

		if m.HasThumbnail {
			if raw, err = sjson.DeleteBytes(raw, pathMediaThumbnail); err != nil {
				return Result{}, fmt.Errorf("delete %s: %w", FieldMediaThumbnail, err)
			}

			res.record(ActionRemoved, FieldMediaThumbnail)
		} else {
			res.Diagnostics.AddInfo(CodeThumbnailSkipped, "media_details[0] has no thumbnail", "", FieldMediaThumbnail)
		}
	} else {
		res.Diagnostics.AddInfo(CodeMediaURLSkipped,
			"media_details has no object at index 0", "", document.FieldMediaDetails)
	}

	if !res.Updated() {
		res.Diagnostics.AddWarning(diagnostic.CodeNoURLField, "no 'url' fields found to update in this entry", "", "")
	}

	if entry.LocalMediaPath != nil {
		for gjson.GetBytes(raw, document.FieldLocalMediaPath).Exists() {
			if raw, err = sjson.DeleteBytes(raw, document.FieldLocalMediaPath); err != nil {
				return Result{}, fmt.Errorf("delete %s: %w", document.FieldLocalMediaPath, err)
			}
		}

		res.record(ActionRemoved, document.FieldLocalMediaPath)
	}

	// Not reachable through relink.Run, which only rewrites entries that
	// carry local_media_path.
	if !res.Removed() {
		res.Diagnostics.AddWarning(diagnostic.CodeNothingRemoved, "no fields found to remove in this entry", "", "")
	}

	next, ok := document.DecodeEntry(raw)
	if !ok {
		return Result{}, errNotObject
	}

	res.Entry = next

	return res, nil
}
