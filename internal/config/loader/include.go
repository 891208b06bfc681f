package loader

import (
	"errors"
	"fmt"
	"path/filepath"
)

// IncludeKey names the top-level key listing files to load beneath a file.
const IncludeKey = "include"

// ErrIncludeDepthExceeded indicates too many nested includes.
var ErrIncludeDepthExceeded = errors.New("include depth exceeded")

// LoadWithIncludes loads path and every file named by its include key,
// which holds a string or a list of strings relative to the including file.
// Included files may use a different format than the file including them.
// The including file overrides its includes, and later includes override
// earlier ones. maxDepth limits nesting.
func LoadWithIncludes(fsys FileSystem, path string, maxDepth int) (map[string]any, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepthExceeded, path)
	}

	l, err := ForPath(fsys, path)
	if err != nil {
		return nil, err
	}
	config, err := l.LoadFrom(path)
	if err != nil || config == nil {
		return nil, err
	}

	includes, ok := config[IncludeKey]
	if !ok {
		return config, nil
	}
	delete(config, IncludeKey)

	var includeList []string
	switch v := includes.(type) {
	case string:
		includeList = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s: %s must be string or array of strings", path, IncludeKey)
			}
			includeList = append(includeList, s)
		}
	default:
		return nil, fmt.Errorf("%s: %s must be string or array of strings, got %T", path, IncludeKey, includes)
	}

	baseDir := filepath.Dir(path)
	var merged map[string]any
	for _, inc := range includeList {
		incPath := inc
		if !filepath.IsAbs(inc) {
			incPath = filepath.Join(baseDir, inc)
		}

		incConfig, err := LoadWithIncludes(fsys, incPath, maxDepth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", incPath, err)
		}
		merged = DeepMerge(merged, incConfig)
	}

	return DeepMerge(merged, config), nil
}
