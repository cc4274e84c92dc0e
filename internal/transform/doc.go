// Package transform rewrites a single entry so it points at its local media
// file instead of the remote URLs it was scraped with.
//
// Rules, applied in order to a qualifying entry:
//
//  1. url_list[0] is replaced by the local path.
//  2. media_details[0].url is replaced by the local path, and
//     media_details[0].thumbnail is deleted.
//  3. local_media_path is deleted.
//
// Each rule fires only when its field is present with the expected shape.
// A rule that does not fire is recorded as an info diagnostic. Finding no
// URL to replace, or nothing to delete, is a warning. Neither is an error.
package transform
