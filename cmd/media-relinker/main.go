// Package main provides the CLI entrypoint for media-relinker.
//
// media-relinker points a scraped media index at locally downloaded files:
//   - Reads input.json from the working directory
//   - Copies it to backup.json unchanged
//   - For every entry carrying local_media_path, replaces url_list[0] and
//     media_details[0].url with that path and drops the thumbnail and
//     local_media_path fields
//   - Writes the result to output.json
//
// It takes no flags and reads no environment variables.
package main

import (
	"os"

	"media-relinker/internal/config"
	"media-relinker/internal/logger"
	"media-relinker/internal/relink"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Default()

	log := logger.Must(logger.Config{Level: cfg.LogLevel})
	defer func() { _ = log.Sync() }()

	summary, err := relink.Run(cfg, log)
	if err != nil {
		log.Error("Relink failed", logger.Error(err))
		return 1
	}

	log.Info("Done",
		logger.Int("entries", summary.Entries),
		logger.Int("processed", summary.Processed),
		logger.Int("skipped", summary.Skipped),
		logger.Int("warnings", summary.Warnings()),
	)

	return 0
}
