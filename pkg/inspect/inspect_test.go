// pkg/inspect/inspect_test.go
package inspect_test

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativeyann17/go-gzinfo/internal/fingerprint"
	"github.com/creativeyann17/go-gzinfo/internal/format"
	"github.com/creativeyann17/go-gzinfo/internal/testutil"
	"github.com/creativeyann17/go-gzinfo/pkg/gzinfo"
	"github.com/creativeyann17/go-gzinfo/pkg/inspect"
)

// mixedTree writes gzip, duplicate, non-gzip and truncated files into a temp dir
func mixedTree(t *testing.T) (dir string, gz []byte) {
	t.Helper()

	dir = t.TempDir()
	gz = testutil.Gzip(t, bytes.Repeat([]byte("log line\n"), 1000), testutil.GzipOptions{
		Name:    "app.log",
		ModTime: time.Unix(1600000000, 0),
		OS:      byte(gzinfo.OSUnix),
	})

	testutil.WriteFile(t, dir, "a.gz", testutil.ReadmeFixture())
	testutil.WriteFile(t, dir, "logs/b.gz", gz)
	testutil.WriteFile(t, dir, "logs/c.gz", gz)
	testutil.WriteFile(t, dir, "d.zst", testutil.Zstd(t, []byte("zstd data, not gzip")))
	testutil.WriteFile(t, dir, "e.txt", []byte("plain text file"))
	testutil.WriteFile(t, dir, "f.gz", gz[:5])
	return dir, gz
}

func findReport(t *testing.T, result *inspect.Result, path string) inspect.FileReport {
	t.Helper()
	for _, f := range result.Files {
		if f.Path == path {
			return f
		}
	}
	t.Fatalf("no report for %s", path)
	return inspect.FileReport{}
}

func TestInspect_Directory(t *testing.T) {
	t.Parallel()

	dir, gz := mixedTree(t)

	result, err := inspect.Inspect(context.Background(), &inspect.Options{
		Paths:      []string{dir},
		Recursive:  true,
		MaxThreads: 3,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 6, result.FilesTotal)
	assert.Equal(t, 3, result.GzipFiles)
	assert.Equal(t, 2, result.NonGzipFiles)
	assert.Equal(t, 1, result.FailedFiles)
	assert.Equal(t, 1, result.DuplicateFiles)
	assert.Equal(t, 2, result.UniqueFiles)
	assert.Equal(t, uint64(len(gz)), result.DuplicateBytes)
	assert.InDelta(t, 100.0/3, result.DuplicateRatio, 0.01)
	assert.Len(t, result.Errors, 1)
	assert.False(t, result.IsValid())

	wantCompressed := uint64(testutil.ReadmeCompressedSize + 2*len(gz))
	assert.Equal(t, wantCompressed, result.CompressedSize)
	assert.Equal(t, uint64(testutil.ReadmeUncompressedSize+2*9000), result.UncompressedSize)

	paths := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		paths = append(paths, f.Path)
	}
	assert.IsIncreasing(t, paths)

	a := findReport(t, result, filepath.Join(dir, "a.gz"))
	require.True(t, a.IsGzip())
	assert.Equal(t, format.FormatGzip, a.Format)
	assert.Equal(t, uint32(testutil.ReadmeCRC32), a.Info.CRC32())
	assert.Equal(t, fingerprint.Of(a.Info.HeaderBytes(), a.Info.FooterBytes()), a.Fingerprint)
	assert.Empty(t, a.DuplicateOf)

	c := findReport(t, result, filepath.Join(dir, "logs", "c.gz"))
	assert.Equal(t, filepath.Join(dir, "logs", "b.gz"), c.DuplicateOf)

	d := findReport(t, result, filepath.Join(dir, "d.zst"))
	assert.False(t, d.IsGzip())
	assert.Equal(t, format.FormatZstd, d.Format)
	assert.ErrorIs(t, d.Err, gzinfo.ErrNotGzip)

	e := findReport(t, result, filepath.Join(dir, "e.txt"))
	assert.Equal(t, format.FormatUnknown, e.Format)

	f := findReport(t, result, filepath.Join(dir, "f.gz"))
	var ioe *gzinfo.IOError
	assert.ErrorAs(t, f.Err, &ioe)

	summary := result.Summary()
	assert.Contains(t, summary, "ERRORS")
	assert.Contains(t, summary, "gzip:       3 (2 unique)")
	assert.Contains(t, summary, "Duplicates (1")
	assert.Contains(t, summary, "33.3%")
	assert.Contains(t, summary, "c.gz = ")
}

func TestInspect_DirectoryWithoutRecursive(t *testing.T) {
	t.Parallel()

	dir, _ := mixedTree(t)

	result, err := inspect.Inspect(context.Background(), &inspect.Options{Paths: []string{dir}}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesTotal)
	assert.Equal(t, 1, result.FailedFiles)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Errors[0], inspect.ErrIsDirectory)
}

func TestInspect_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	readme := testutil.WriteFile(t, dir, "readme.gz", testutil.ReadmeFixture())
	missing := filepath.Join(dir, "missing.gz")

	result, err := inspect.Inspect(context.Background(), &inspect.Options{
		Paths: []string{readme, missing, readme, dir + "/./readme.gz"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesTotal, "duplicate input paths are inspected once")
	assert.Equal(t, 1, result.GzipFiles)
	assert.Equal(t, 1, result.FailedFiles)
	assert.Equal(t, 0, result.DuplicateFiles)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Errors[0], fs.ErrNotExist)
	assert.InDelta(t, 37.4, result.CompressionRatio(), 0.1)
}

func TestInspect_Gitignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gz := testutil.Gzip(t, []byte("payload"), testutil.GzipOptions{})
	testutil.WriteFile(t, dir, ".gitignore", []byte("*.log\nbuild/\n"))
	testutil.WriteFile(t, dir, "keep.gz", gz)
	testutil.WriteFile(t, dir, "debug.log", []byte("debug log line\n"))
	testutil.WriteFile(t, dir, "build/out.gz", gz)
	testutil.WriteFile(t, dir, "sub/.gitignore", []byte("# generated\nlocal.gz\n"))
	testutil.WriteFile(t, dir, "sub/local.gz", gz)
	testutil.WriteFile(t, dir, "sub/shared.gz", gz)

	t.Run("enabled", func(t *testing.T) {
		result, err := inspect.Inspect(context.Background(), &inspect.Options{
			Paths:        []string{dir},
			Recursive:    true,
			UseGitignore: true,
		}, nil)
		require.NoError(t, err)

		var names []string
		for _, f := range result.Files {
			rel, err := filepath.Rel(dir, f.Path)
			require.NoError(t, err)
			names = append(names, filepath.ToSlash(rel))
		}
		assert.Equal(t, []string{"keep.gz", "sub/shared.gz"}, names)
		assert.Equal(t, 1, result.DuplicateFiles)
		assert.True(t, result.IsValid())
	})

	t.Run("disabled", func(t *testing.T) {
		result, err := inspect.Inspect(context.Background(), &inspect.Options{
			Paths:     []string{dir},
			Recursive: true,
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, 7, result.FilesTotal)
		assert.Equal(t, 4, result.GzipFiles)
		assert.Equal(t, 3, result.NonGzipFiles)
	})
}

func TestInspect_Digest(t *testing.T) {
	t.Parallel()

	data := testutil.ReadmeFixture()
	path := testutil.WriteFile(t, t.TempDir(), "readme.gz", data)

	result, err := inspect.Inspect(context.Background(), &inspect.Options{
		Paths:         []string{path},
		ComputeDigest: true,
	}, nil)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	assert.Equal(t, digest.FromBytes(data), result.Files[0].Digest)
	assert.NoError(t, result.Files[0].Digest.Validate())

	result, err = inspect.Inspect(context.Background(), &inspect.Options{Paths: []string{path}}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Files[0].Digest)
}

func TestInspect_Progress(t *testing.T) {
	t.Parallel()

	dir, _ := mixedTree(t)

	var mu sync.Mutex
	var events []inspect.ProgressEvent
	cb := func(e inspect.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	}

	result, err := inspect.Inspect(context.Background(), &inspect.Options{
		Paths:      []string{dir},
		Recursive:  true,
		MaxThreads: 4,
	}, cb)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(events), 2)
	assert.Equal(t, inspect.EventStart, events[0].Type)
	assert.Equal(t, result.FilesTotal, events[0].Total)
	assert.Equal(t, inspect.EventComplete, events[len(events)-1].Type)

	inspected, failed, last := 0, 0, 0
	for _, e := range events[1 : len(events)-1] {
		switch e.Type {
		case inspect.EventFileInspect:
			inspected++
		case inspect.EventError:
			failed++
			assert.Error(t, e.Err)
		}
		assert.Equal(t, last+1, e.Current)
		last = e.Current
	}
	assert.Equal(t, result.GzipFiles, inspected)
	assert.Equal(t, result.NonGzipFiles+result.FailedFiles, failed)
}

func TestInspect_ProgressBar(t *testing.T) {
	t.Parallel()

	dir, _ := mixedTree(t)

	var out bytes.Buffer
	cb, progress := inspect.ProgressBarCallback(&out)
	_, err := inspect.Inspect(context.Background(), &inspect.Options{
		Paths:     []string{dir},
		Recursive: true,
	}, cb)
	require.NoError(t, err)
	progress.Wait()

	assert.Contains(t, out.String(), "Inspecting")
}

func TestInspect_Cancelled(t *testing.T) {
	t.Parallel()

	dir, _ := mixedTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var events []inspect.ProgressEvent
	cb := func(e inspect.ProgressEvent) { events = append(events, e) }

	result, err := inspect.Inspect(ctx, &inspect.Options{Paths: []string{dir}, Recursive: true}, cb)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)

	require.NotEmpty(t, events)
	assert.Equal(t, inspect.EventStart, events[0].Type)
	last := events[len(events)-1]
	assert.Equal(t, inspect.EventCancelled, last.Type)
	assert.ErrorIs(t, last.Err, context.Canceled)
}

func TestInspect_ProgressBarCancelled(t *testing.T) {
	t.Parallel()

	dir, _ := mixedTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	cb, progress := inspect.ProgressBarCallback(&out)
	_, err := inspect.Inspect(ctx, &inspect.Options{Paths: []string{dir}, Recursive: true}, cb)
	require.ErrorIs(t, err, context.Canceled)

	done := make(chan struct{})
	go func() {
		progress.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("progress bar still running after a cancelled inspection")
	}
}

func TestInspect_Logger(t *testing.T) {
	t.Parallel()

	dir, _ := mixedTree(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := inspect.Inspect(context.Background(), &inspect.Options{
		Paths:     []string{dir},
		Recursive: true,
		Logger:    logger,
	}, nil)
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "inspection started")
	assert.Contains(t, logs, "file inspected")
	assert.Contains(t, logs, "file not inspected")
	assert.Contains(t, logs, "inspection complete")
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    inspect.Options
		wantErr error
	}{
		{"no paths", inspect.Options{}, inspect.ErrInputRequired},
		{"empty path", inspect.Options{Paths: []string{""}}, inspect.ErrInputRequired},
		{"negative threads", inspect.Options{Paths: []string{"x"}, MaxThreads: -1}, inspect.ErrInvalidThreads},
		{"valid", inspect.Options{Paths: []string{"x"}}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := tc.opts
			err := opts.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, opts.MaxThreads)
			assert.NotNil(t, opts.Logger)
		})
	}

	quiet := inspect.Options{Paths: []string{"x"}, Quiet: true, Verbose: true}
	require.NoError(t, quiet.Validate())
	assert.False(t, quiet.Verbose)

	defaults := inspect.DefaultOptions()
	assert.Positive(t, defaults.MaxThreads)
	assert.NotNil(t, defaults.Logger)
}
