package logstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testApp = "p2p-rendezvous-server"

func writeLines(t *testing.T, path string, n int) []string {
	t.Helper()
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %03d", i)
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return lines
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// ── Open ─────────────────────────────────────────────────────────────────────

func TestOpen_FreshDirectory(t *testing.T) {
	base := t.TempDir()

	s := Open(Options{AppName: testApp, DataDir: base}, nil)
	t.Cleanup(func() { _ = s.Close() })

	require.Empty(t, s.InitError())
	require.NotNil(t, s.Writer())
	assert.Equal(t, filepath.Join(base, testApp, FileName), s.Path())
	assert.Equal(t, 0, s.Len(), "no marker without previous lines")

	_, err := os.Stat(s.Path())
	assert.NoError(t, err, "log file is created on open")
}

func TestOpen_TrimsFileAndLoadsRecent(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, testApp, FileName)
	all := writeLines(t, path, 305)

	s := Open(Options{AppName: testApp, DataDir: base}, nil)
	t.Cleanup(func() { _ = s.Close() })
	require.Empty(t, s.InitError())

	onDisk := readLines(t, path)
	assert.Equal(t, all[5:], onDisk, "file keeps exactly the last 300 lines")

	mem := s.Tail(MemoryLimit + 1)
	require.Len(t, mem, MemoryLimit+1)
	assert.Equal(t, all[205:], mem[:MemoryLimit])
	assert.Equal(t, SessionStartMarker, mem[MemoryLimit])
}

func TestOpen_SmallFileIsNotRewritten(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, testApp, FileName)
	all := writeLines(t, path, 42)

	s := Open(Options{AppName: testApp, DataDir: base}, nil)
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, all, readLines(t, path))
	assert.Equal(t, 43, s.Len())
	assert.Equal(t, SessionStartMarker, s.Tail(1)[0])
}

func TestOpen_MarkerIsNotPersisted(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, testApp, FileName)
	writeLines(t, path, 3)

	s := Open(Options{AppName: testApp, DataDir: base}, nil)
	require.NoError(t, s.Close())

	for _, l := range readLines(t, path) {
		assert.NotEqual(t, SessionStartMarker, l)
	}
}

func TestOpen_NoDataDirectory(t *testing.T) {
	prev := dataHome
	dataHome = func() string { return "" }
	t.Cleanup(func() { dataHome = prev })

	s := Open(Options{AppName: testApp}, nil)

	assert.Equal(t, "[E391] Failed to find a suitable directory for log data.", s.InitError())
	assert.Nil(t, s.Writer())
	assert.Empty(t, s.Path())
	assert.NoError(t, s.Close())
}

func TestOpen_UsesDataHomeWhenNoOverride(t *testing.T) {
	base := t.TempDir()
	prev := dataHome
	dataHome = func() string { return base }
	t.Cleanup(func() { dataHome = prev })

	s := Open(Options{AppName: testApp}, nil)
	t.Cleanup(func() { _ = s.Close() })

	require.Empty(t, s.InitError())
	assert.Equal(t, filepath.Join(base, testApp, FileName), s.Path())
}

func TestOpen_CreateDirectoryFails(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := Open(Options{AppName: testApp, DataDir: blocker}, nil)

	assert.True(t, strings.HasPrefix(s.InitError(), "[E392]"), s.InitError())
	assert.Nil(t, s.Writer())
}

func TestOpen_LoadFails(t *testing.T) {
	base := t.TempDir()
	// A directory where the log file should be makes reading fail.
	require.NoError(t, os.MkdirAll(filepath.Join(base, testApp, FileName), 0o755))

	s := Open(Options{AppName: testApp, DataDir: base}, nil)

	assert.True(t, strings.HasPrefix(s.InitError(), "[E394]"), s.InitError())
	assert.Nil(t, s.Writer())
}

func TestOpen_SkipsDamagedLines(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, testApp, FileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	content := "first\n" +
		strings.Repeat("x", maxLineSize+1) + "\n" +
		"bad \xff\xfe bytes\n" +
		"last\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := Open(Options{AppName: testApp, DataDir: base}, nil)
	defer s.Close()

	require.Empty(t, s.InitError())
	assert.Equal(t, []string{"first", "last", SessionStartMarker}, s.Tail(MemoryLimit))
}

func TestScanLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "trailing newline", in: "a\nb\n", want: []string{"a", "b"}},
		{name: "no trailing newline", in: "a\nb", want: []string{"a", "b"}},
		{name: "blank line kept", in: "a\n\nb\n", want: []string{"a", "", "b"}},
		{name: "oversized last line", in: "a\n" + strings.Repeat("y", maxLineSize+10), want: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scanLines(strings.NewReader(tt.in))

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Update / Tail ────────────────────────────────────────────────────────────

func TestUpdate_NeverExceedsLimit(t *testing.T) {
	s := &Store{}

	for i := 0; i < 350; i++ {
		s.Update(fmt.Sprintf("l%d", i))
		require.LessOrEqual(t, s.Len(), MemoryLimit)
	}

	got := s.Tail(MemoryLimit)
	require.Len(t, got, MemoryLimit)
	for i, l := range got {
		assert.Equal(t, fmt.Sprintf("l%d", 250+i), l)
	}
}

func TestUpdate_EvictsMarkerLikeAnyLine(t *testing.T) {
	s := &Store{items: []string{"old", SessionStartMarker}}
	for i := 0; i < MemoryLimit; i++ {
		s.Update("new")
	}
	assert.NotContains(t, s.Tail(MemoryLimit), SessionStartMarker)
}

func TestTail(t *testing.T) {
	s := &Store{}
	for _, l := range []string{"a", "b", "c", "d"} {
		s.Update(l)
	}

	tests := []struct {
		name string
		k    int
		want []string
	}{
		{name: "zero", k: 0, want: nil},
		{name: "negative", k: -1, want: nil},
		{name: "fewer than stored", k: 2, want: []string{"c", "d"}},
		{name: "exactly stored", k: 4, want: []string{"a", "b", "c", "d"}},
		{name: "more than stored", k: 10, want: []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Tail(tt.k))
		})
	}
}

func TestTail_ReturnsCopy(t *testing.T) {
	s := &Store{}
	s.Update("a")

	got := s.Tail(1)
	got[0] = "mutated"

	assert.Equal(t, []string{"a"}, s.Tail(1))
}
