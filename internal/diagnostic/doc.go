// Package diagnostic provides the non-fatal findings of an entry rewrite.
//
// Findings never stop a run. They carry a stable code so tests and callers
// can tell them apart without matching message text:
//   - entry_skipped: an entry has no local_media_path
//   - no_url_field: nothing was found to point at the local path
//   - nothing_removed: no field was deleted from the entry
package diagnostic
