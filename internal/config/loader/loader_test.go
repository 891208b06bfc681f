package loader

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestForPath(t *testing.T) {
	memfs := NewMemFS()

	tests := []struct {
		path string
		want any
	}{
		{"/a.toml", &TOMLLoader{}},
		{"/a.TOML", &TOMLLoader{}},
		{"/a.yaml", &YAMLLoader{}},
		{"/a.yml", &YAMLLoader{}},
	}
	for _, tt := range tests {
		l, err := ForPath(memfs, tt.path)
		require.NoError(t, err, tt.path)
		assert.IsType(t, tt.want, l, tt.path)
	}

	_, err := ForPath(memfs, "/a.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/fingerseq.toml", `
[log]
level = "debug"

[bench]
sizes = [1000, 10000]
rounds = 3
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/fingerseq.toml").Load()
	require.NoError(t, err)

	bench, ok := config["bench"].(map[string]any)
	require.True(t, ok, "expected bench to be a map")
	assert.Equal(t, int64(3), bench["rounds"])
	assert.Equal(t, []any{int64(1000), int64(10000)}, bench["sizes"])

	log, ok := config["log"].(map[string]any)
	require.True(t, ok, "expected log to be a map")
	assert.Equal(t, "debug", log["level"])
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := (&TOMLLoader{}).LoadFromReader(strings.NewReader(`rounds = 12`))
	require.NoError(t, err)
	assert.Equal(t, int64(12), config["rounds"])
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/fingerseq.yaml", `
log:
  level: warn
dump:
  max_leaves: 40
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/fingerseq.yaml").Load()
	require.NoError(t, err)

	dump, ok := config["dump"].(map[string]any)
	require.True(t, ok, "expected dump to be a map")
	assert.Equal(t, 40, dump["max_leaves"])
}

func TestYAMLLoader_EmptyDocument(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yml", "")

	config, err := NewYAMLLoaderWithFS(memfs, "/empty.yml").Load()
	require.NoError(t, err)
	assert.Empty(t, config)
}

func TestLoadNonExistent(t *testing.T) {
	memfs := NewMemFS()

	for _, l := range []Loader{
		NewTOMLLoaderWithFS(memfs, "/missing.toml"),
		NewYAMLLoaderWithFS(memfs, "/missing.yaml"),
	} {
		config, err := l.Load()
		require.NoError(t, err)
		assert.Nil(t, config)
	}
}

func TestLoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[log\nlevel = 1\n")
	memfs.AddFile("/bad.yaml", "log:\n  level: [unclosed\n")

	for _, path := range []string{"/bad.toml", "/bad.yaml"} {
		l, err := ForPath(memfs, path)
		require.NoError(t, err)

		_, err = l.Load()
		var perr *ParseError
		require.ErrorAs(t, err, &perr, path)
		assert.Equal(t, path, perr.Path)
		assert.Greater(t, perr.Line, 0, path)
		assert.NotNil(t, perr.Unwrap())
	}
}

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a.toml", Message: "bad"}, "parse error in a.toml: bad"},
		{ParseError{Path: "a.toml", Line: 3, Message: "bad"}, "parse error in a.toml at line 3: bad"},
		{ParseError{Path: "a.toml", Line: 3, Column: 7, Message: "bad"}, "parse error in a.toml at line 3, column 7: bad"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestLoadWithIncludes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/etc/fingerseq.toml", `
include = ["base.yaml", "override.toml"]

[bench]
rounds = 2
`)
	memfs.AddFile("/etc/base.yaml", `
bench:
  rounds: 9
  seed: 7
log:
  level: error
`)
	memfs.AddFile("/etc/override.toml", `
[log]
level = "warn"
`)

	config, err := LoadWithIncludes(memfs, "/etc/fingerseq.toml", 5)
	require.NoError(t, err)
	assert.NotContains(t, config, IncludeKey)

	bench := config["bench"].(map[string]any)
	assert.Equal(t, int64(2), bench["rounds"], "including file wins")
	assert.Equal(t, 7, bench["seed"], "included value kept")
	assert.Equal(t, "warn", config["log"].(map[string]any)["level"], "later include wins")
}

func TestLoadWithIncludes_DepthExceeded(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `include = "b.toml"`)
	memfs.AddFile("/b.toml", `include = "c.toml"`)
	memfs.AddFile("/c.toml", `value = 1`)

	_, err := LoadWithIncludes(memfs, "/a.toml", 2)
	assert.ErrorIs(t, err, ErrIncludeDepthExceeded)

	config, err := LoadWithIncludes(memfs, "/a.toml", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), config["value"])
}

func TestLoadWithIncludes_BadInclude(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `include = 5`)

	_, err := LoadWithIncludes(memfs, "/a.toml", 3)
	assert.Error(t, err)
}

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name     string
		dst      map[string]any
		src      map[string]any
		expected map[string]any
	}{
		{
			name:     "nil dst",
			src:      map[string]any{"a": 1},
			expected: map[string]any{"a": 1},
		},
		{
			name:     "nil src",
			dst:      map[string]any{"a": 1},
			expected: map[string]any{"a": 1},
		},
		{
			name:     "src overrides dst",
			dst:      map[string]any{"a": 1},
			src:      map[string]any{"a": 2, "b": 3},
			expected: map[string]any{"a": 2, "b": 3},
		},
		{
			name:     "nested merge",
			dst:      map[string]any{"bench": map[string]any{"rounds": 4}},
			src:      map[string]any{"bench": map[string]any{"seed": 1}},
			expected: map[string]any{"bench": map[string]any{"rounds": 4, "seed": 1}},
		},
		{
			name:     "map replaces scalar",
			dst:      map[string]any{"bench": 1},
			src:      map[string]any{"bench": map[string]any{"seed": 1}},
			expected: map[string]any{"bench": map[string]any{"seed": 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeepMerge(tt.dst, tt.src))
		})
	}
}
