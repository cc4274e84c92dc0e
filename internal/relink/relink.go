// Package relink runs the whole rewrite: load, back up, rewrite every
// qualifying entry, write the result.
package relink

import (
	"fmt"

	"media-relinker/internal/backup"
	"media-relinker/internal/config"
	"media-relinker/internal/diagnostic"
	"media-relinker/internal/document"
	"media-relinker/internal/logger"
	"media-relinker/internal/transform"
)

// Summary describes a finished run.
type Summary struct {
	// Entries is the number of top-level members in the input.
	Entries int
	// Processed counts entries that were rewritten.
	Processed int
	// Skipped counts entries without local_media_path.
	Skipped     int
	Diagnostics diagnostic.Diagnostics
}

// Warnings returns the number of warnings raised during the run.
func (s *Summary) Warnings() int {
	return len(s.Diagnostics.Warnings)
}

// Run performs one rewrite pass as described by cfg.
//
// The steps run strictly in order and the first failure stops the run:
// the input is loaded and parsed, copied to the backup path, checked to be
// a JSON object, rewritten entry by entry, and finally written to the
// output path. The input file is never written. Fatal errors are the
// classes in package apperrors; per-entry problems are only diagnostics.
func Run(cfg config.Config, log logger.Logger) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	doc, err := document.LoadFile(cfg.InputPath)
	if err != nil {
		return nil, err
	}

	log.Debug("Loaded input", logger.String("path", cfg.InputPath), logger.Int("bytes", doc.Size()))

	if err := backup.Copy(cfg.InputPath, cfg.BackupPath); err != nil {
		return nil, err
	}

	log.Info("Backup created", logger.String("path", cfg.BackupPath))

	items, err := doc.Items()
	if err != nil {
		return nil, err
	}

	summary := &Summary{Entries: len(items)}

	for i := range items {
		if err := rewriteItem(&items[i], summary, log); err != nil {
			return nil, err
		}
	}

	if err := document.WriteFile(cfg.OutputPath, items); err != nil {
		return nil, err
	}

	log.Info("Modified JSON saved", logger.String("path", cfg.OutputPath))

	return summary, nil
}

// rewriteItem rewrites it in place when it qualifies.
func rewriteItem(it *document.Item, summary *Summary, log logger.Logger) error {
	entry, ok := document.DecodeEntry(it.Value)
	if !ok || !entry.Qualifies() {
		summary.Skipped++
		summary.Diagnostics.AddWarning(diagnostic.CodeEntrySkipped,
			"missing 'local_media_path'", it.Key, document.FieldLocalMediaPath)
		log.Warn("Skipping entry (missing 'local_media_path')", logger.String("key", it.Key))

		return nil
	}

	localPath := *entry.LocalMediaPath
	entryLog := log.With(logger.String("key", it.Key))
	entryLog.Info("Processing entry", logger.String("local_path", localPath))

	res, err := transform.ApplyLocal(entry)
	if err != nil {
		return fmt.Errorf("rewrite entry %s: %w", it.Key, err)
	}

	changes := make([]string, 0, len(res.Changes))
	for _, c := range res.Changes {
		entryLog.Info(c.String(), logger.String("field", c.Field))
		changes = append(changes, c.String())
	}

	for _, d := range res.Diagnostics.Infos {
		entryLog.Debug(d.Message, logger.String("code", d.Code))
	}

	for _, d := range res.Diagnostics.Warnings {
		entryLog.Warn(d.Message, logger.String("code", d.Code))
	}

	entryLog.Info("Entry rewritten", logger.Strings("changes", changes))

	it.Value = res.Entry.Raw()
	summary.Processed++
	summary.Diagnostics.Merge(res.Diagnostics.WithKey(it.Key))

	return nil
}
