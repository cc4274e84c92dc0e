package relink

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"media-relinker/internal/apperrors"
	"media-relinker/internal/config"
	"media-relinker/internal/diagnostic"
	"media-relinker/internal/document"
	"media-relinker/internal/logger"
)

type fixture struct {
	cfg  config.Config
	logs *observer.ObservedLogs
	log  logger.Logger
}

func newFixture(t *testing.T, input string) *fixture {
	t.Helper()

	cfg := config.Default().InDir(t.TempDir())
	if input != "" {
		require.NoError(t, os.WriteFile(cfg.InputPath, []byte(input), 0o644))
	}

	core, logs := observer.New(zapcore.DebugLevel)

	return &fixture{cfg: cfg, logs: logs, log: logger.FromZap(zap.New(core))}
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func (f *fixture) outputItems(t *testing.T) []document.Item {
	t.Helper()

	doc, err := document.LoadFile(f.cfg.OutputPath)
	require.NoError(t, err)

	items, err := doc.Items()
	require.NoError(t, err)

	return items
}

func TestRunRewritesQualifyingEntry(t *testing.T) {
	input := `{"u1": {"local_media_path": "/m/a.jpg", "url_list": ["http://old/1"], "media_details": [{"url": "http://old/2", "thumbnail": "http://old/t"}]}}`
	f := newFixture(t, input)

	summary, err := Run(f.cfg, f.log)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Entries)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Warnings())

	want := `{
    "u1": {
        "url_list": [
            "/m/a.jpg"
        ],
        "media_details": [
            {
                "url": "/m/a.jpg"
            }
        ]
    }
}`
	assert.Equal(t, want, f.read(t, f.cfg.OutputPath))
	assert.Equal(t, input, f.read(t, f.cfg.InputPath))
	assert.Equal(t, input, f.read(t, f.cfg.BackupPath))

	assert.Equal(t, 1, f.logs.FilterMessage("Backup created").Len())
	assert.Equal(t, 1, f.logs.FilterMessage("Processing entry").FilterField(zap.String("key", "u1")).Len())
	assert.Equal(t, 1, f.logs.FilterMessage("Removed media_details[0].thumbnail").Len())

	rewritten := f.logs.FilterMessage("Entry rewritten").All()
	require.Len(t, rewritten, 1)
	assert.Equal(t, []interface{}{
		"Updated url_list[0]",
		"Updated media_details[0].url",
		"Removed media_details[0].thumbnail",
		"Removed local_media_path",
	}, rewritten[0].ContextMap()["changes"])
	assert.Equal(t, 1, f.logs.FilterMessage("Modified JSON saved").Len())
}

func TestRunEntryWithoutURLFields(t *testing.T) {
	f := newFixture(t, `{"u1": {"local_media_path": "/m/b.mp4"}}`)

	summary, err := Run(f.cfg, f.log)
	require.NoError(t, err)

	assert.Equal(t, "{\n    \"u1\": {}\n}", f.read(t, f.cfg.OutputPath))
	assert.Equal(t, 1, summary.Processed)
	require.Equal(t, 1, summary.Warnings())
	assert.Equal(t, diagnostic.CodeNoURLField, summary.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "u1", summary.Diagnostics.Warnings[0].Key)

	warns := f.logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0].Message, "no 'url' fields")
	assert.Equal(t, "u1", warns[0].ContextMap()["key"])
}

func TestRunSkipsEntriesWithoutLocalPath(t *testing.T) {
	input := `{
  "https://www.instagram.com/reel/A/": {"caption": "ünïcode", "url_list": ["http://old/1"], "media_details": [{"url": "http://old/2", "thumbnail": "t"}], "score": 1.0},
  "https://www.instagram.com/reel/B/": {"local_media_path": "/m/b.jpg", "url_list": ["http://old/3"]},
  "https://www.instagram.com/reel/C/": ["not", "an", "object"]
}`
	f := newFixture(t, input)

	summary, err := Run(f.cfg, f.log)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Entries)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 2, summary.Skipped)

	in, err := document.Parse("input", []byte(input))
	require.NoError(t, err)
	inItems, err := in.Items()
	require.NoError(t, err)

	out := f.outputItems(t)
	require.Len(t, out, 3)

	// Keys keep their input order.
	for i := range inItems {
		assert.Equal(t, inItems[i].Key, out[i].Key)
	}

	// Skipped entries are the same JSON, only re-indented.
	assert.Equal(t, string(pretty.Ugly(inItems[0].Value)), string(pretty.Ugly(out[0].Value)))
	assert.Equal(t, string(pretty.Ugly(inItems[2].Value)), string(pretty.Ugly(out[2].Value)))
	assert.JSONEq(t, `{"url_list": ["/m/b.jpg"]}`, string(out[1].Value))

	assert.Contains(t, f.read(t, f.cfg.OutputPath), `"caption": "ünïcode"`)

	skipped := f.logs.FilterMessage("Skipping entry (missing 'local_media_path')").All()
	require.Len(t, skipped, 2)
	assert.Equal(t, "https://www.instagram.com/reel/A/", skipped[0].ContextMap()["key"])
	assert.Equal(t, "https://www.instagram.com/reel/C/", skipped[1].ContextMap()["key"])
}

func TestRunMissingInput(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, os.WriteFile(f.cfg.OutputPath, []byte("previous output"), 0o644))

	summary, err := Run(f.cfg, f.log)
	assert.Nil(t, summary)

	var nf *apperrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, f.cfg.InputPath, nf.Path)

	assert.NoFileExists(t, f.cfg.BackupPath)
	assert.Equal(t, "previous output", f.read(t, f.cfg.OutputPath))
}

func TestRunMalformedInput(t *testing.T) {
	f := newFixture(t, `{"u1": {"local_media_path": "/m/a.jpg",}`)

	_, err := Run(f.cfg, f.log)

	var pe *apperrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.NoFileExists(t, f.cfg.BackupPath)
	assert.NoFileExists(t, f.cfg.OutputPath)
}

func TestRunRejectsNonObjectDocument(t *testing.T) {
	for _, input := range []string{`[{"local_media_path": "/m/a.jpg"}]`, `"scalar"`, `7`} {
		t.Run(input, func(t *testing.T) {
			f := newFixture(t, input)

			_, err := Run(f.cfg, f.log)

			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NoFileExists(t, f.cfg.OutputPath)

			// The backup is taken before the shape is checked.
			assert.Equal(t, input, f.read(t, f.cfg.BackupPath))
		})
	}
}

func TestRunBackupIsByteIdentical(t *testing.T) {
	input := "{\r\n\t\"u1\":   {\"local_media_path\": \"/m/a.jpg\", \"url_list\": [\"http://old\"]}\r\n}\n\n"
	f := newFixture(t, input)
	require.NoError(t, os.WriteFile(f.cfg.BackupPath, []byte("an older and much longer backup file"), 0o644))

	_, err := Run(f.cfg, f.log)
	require.NoError(t, err)

	assert.Equal(t, input, f.read(t, f.cfg.BackupPath))
	assert.Equal(t, input, f.read(t, f.cfg.InputPath))
}

func TestRunIsStableOnItsOwnOutput(t *testing.T) {
	f := newFixture(t, `{"u1": {"local_media_path": "/m/a.jpg", "url_list": ["x"], "media_details": [{"url": "y", "thumbnail": "z"}]}}`)

	_, err := Run(f.cfg, f.log)
	require.NoError(t, err)

	first := f.read(t, f.cfg.OutputPath)

	second := newFixture(t, first)
	summary, err := Run(second.cfg, second.log)
	require.NoError(t, err)

	assert.Equal(t, first, second.read(t, second.cfg.OutputPath))
	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
}

func TestRunInvalidConfig(t *testing.T) {
	f := newFixture(t, `{}`)
	cfg := f.cfg
	cfg.OutputPath = cfg.InputPath

	_, err := Run(cfg, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.NoFileExists(t, cfg.BackupPath)
}

func TestRunUnescapesText(t *testing.T) {
	f := newFixture(t, `{"caf\u00e9": {"caption": "caf\u00e9 \ud83d\ude00", "local_media_path": "\/m\/\u00e9.jpg", "url_list": ["x"]}}`)

	_, err := Run(f.cfg, f.log)
	require.NoError(t, err)

	want := `{
    "café": {
        "caption": "café 😀",
        "url_list": [
            "/m/é.jpg"
        ]
    }
}`
	assert.Equal(t, want, f.read(t, f.cfg.OutputPath))
}

func TestRunCollapsesRepeatedKeys(t *testing.T) {
	f := newFixture(t, `{
  "u1": {"local_media_path": "/m/old.jpg", "url_list": ["x"]},
  "u2": {"caption": "kept"},
  "u1": {"local_media_path": "/m/a.jpg", "local_media_path": "/m/b.jpg", "url_list": ["y"]}
}`)

	summary, err := Run(f.cfg, f.log)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Entries)
	assert.Equal(t, 1, summary.Processed)

	out := f.outputItems(t)
	require.Len(t, out, 2)
	assert.Equal(t, "u1", out[0].Key)
	assert.JSONEq(t, `{"url_list": ["/m/b.jpg"]}`, string(out[0].Value))
	assert.Equal(t, "u2", out[1].Key)
	assert.NotContains(t, f.read(t, f.cfg.OutputPath), "local_media_path")
}

func TestRunKeepsLocalPathType(t *testing.T) {
	f := newFixture(t, `{"u1": {"local_media_path": null, "url_list": ["x"]}}`)

	_, err := Run(f.cfg, f.log)
	require.NoError(t, err)

	out := f.outputItems(t)
	require.Len(t, out, 1)
	assert.Equal(t, `{"url_list":[null]}`, string(out[0].Value))
}

func TestRunRejectsInvalidUTF8(t *testing.T) {
	f := newFixture(t, "{\"u1\": {\"caption\": \"\xff\xfe\", \"local_media_path\": \"/m/a.jpg\"}}")

	_, err := Run(f.cfg, f.log)

	var pe *apperrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, apperrors.ErrInvalidUTF8)
	assert.NoFileExists(t, f.cfg.BackupPath)
	assert.NoFileExists(t, f.cfg.OutputPath)
}
