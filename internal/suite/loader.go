package suite

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/nestunit/internal/errors"
	"github.com/AndreyAkinshin/nestunit/internal/schema"
)

// Extensions lists the file extensions recognised as suite files.
var Extensions = []string{".yaml", ".yml", ".json"}

// Load reads, validates and decodes a suite file. Operand values of the form
// {$file: name} are replaced by the content of the named file, resolved
// relative to the suite file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.NestunitError{
			Kind:    errors.KindEnvironment,
			Suite:   path,
			Message: "cannot read suite",
			Cause:   err,
		}
	}

	s, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, errors.Validation(path, err)
	}
	s.Path = path
	return s, nil
}

// Parse validates and decodes suite data. $file references are resolved
// relative to baseDir.
func Parse(data []byte, baseDir string) (*Suite, error) {
	if err := schema.ValidateSuite(data); err != nil {
		return nil, err
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse suite: %w", err)
	}

	if err := resolveSuiteRefs(&s, baseDir); err != nil {
		return nil, err
	}

	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Discover expands the given paths into a sorted, de-duplicated list of
// suite files. Directories are walked recursively; files are taken as given
// regardless of their extension.
func Discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.NotFound("suite", p)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		matches, err := findMatches(p)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("failed to scan %s", p))
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// findMatches returns the suite files below dir.
func findMatches(dir string) ([]string, error) {
	var matches []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if IsSuiteFile(path) {
			matches = append(matches, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}

// IsSuiteFile reports whether path has a suite file extension.
func IsSuiteFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func resolveSuiteRefs(s *Suite, baseDir string) error {
	if err := resolveCaseRefs(s.Cases, baseDir); err != nil {
		return err
	}
	return resolveGroupRefs(s.Groups, baseDir)
}

func resolveGroupRefs(groups []Group, baseDir string) error {
	for i := range groups {
		if err := resolveCaseRefs(groups[i].Cases, baseDir); err != nil {
			return fmt.Errorf("group %q: %w", groups[i].Name, err)
		}
		if err := resolveGroupRefs(groups[i].Groups, baseDir); err != nil {
			return fmt.Errorf("group %q: %w", groups[i].Name, err)
		}
	}
	return nil
}

func resolveCaseRefs(cases []Case, baseDir string) error {
	for i := range cases {
		c := &cases[i]
		var err error
		if c.Actual, err = resolveFileRefs(c.Actual, baseDir); err != nil {
			return fmt.Errorf("case %q: actual: %w", c.Name, err)
		}
		if c.Expected, err = resolveFileRefs(c.Expected, baseDir); err != nil {
			return fmt.Errorf("case %q: expected: %w", c.Name, err)
		}
		for _, row := range c.Rows {
			for j := range row {
				if row[j], err = resolveFileRefs(row[j], baseDir); err != nil {
					return fmt.Errorf("case %q: rows: %w", c.Name, err)
				}
			}
		}
	}
	return nil
}

// resolveFileRefs recursively resolves $file references in operand values.
func resolveFileRefs(value any, baseDir string) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		// Check if this is a $file reference
		if fileRef, ok := v["$file"].(string); ok && len(v) == 1 {
			return loadFileRef(fileRef, baseDir)
		}

		// Recursively resolve nested values
		result := make(map[string]any, len(v))
		for key, val := range v {
			resolved, err := resolveFileRefs(val, baseDir)
			if err != nil {
				return nil, err
			}
			result[key] = resolved
		}
		return result, nil

	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			resolved, err := resolveFileRefs(val, baseDir)
			if err != nil {
				return nil, err
			}
			result[i] = resolved
		}
		return result, nil

	default:
		return value, nil
	}
}

// loadFileRef loads a file referenced by $file. YAML and JSON content is
// decoded; anything else is returned as a string.
func loadFileRef(ref, baseDir string) (any, error) {
	// Security: prevent path traversal
	if !filepath.IsLocal(ref) {
		return nil, fmt.Errorf("$file path escapes suite directory: %s", ref)
	}

	data, err := os.ReadFile(filepath.Join(baseDir, ref))
	if err != nil {
		return nil, fmt.Errorf("$file %q: %w", ref, err)
	}

	if IsSuiteFile(ref) {
		var value any
		if err := yaml.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("$file %q: %w", ref, err)
		}
		return value, nil
	}
	return string(data), nil
}
