package rules

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quarrysec/quarry/pkg/errors"
)

// ruleFileExts is the file-type class recognized during directory
// discovery.
var ruleFileExts = map[string]bool{
	".yaml": true,
	".yml":  true,
}

// FindRuleFiles returns every rule-definition file under dir in
// lexicographic path order. Symlinked directories are traversed, with
// cycle protection. The scan is exhaustive within the file-type filter:
// .gitignore-style exclusion conventions are not honored, since rule
// directories are curated. Any unreadable entry aborts the scan.
func FindRuleFiles(dir string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	if err := walkRuleFiles(dir, seen, &files); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func walkRuleFiles(dir string, seen map[string]bool, files *[]string) error {
	// Visited set is keyed on resolved paths so a symlink cycle
	// terminates instead of recursing forever.
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		if seen[resolved] {
			return nil
		}
		seen[resolved] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", dir).
			WithDetail("path", dir)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Stat rather than the entry's own type so that symlinks to
		// directories are traversed and symlinks to files are kept.
		info, err := os.Stat(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path).
				WithDetail("path", path)
		}

		if info.IsDir() {
			if err := walkRuleFiles(path, seen, files); err != nil {
				return err
			}
			continue
		}

		if info.Mode().IsRegular() && ruleFileExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			*files = append(*files, path)
		}
	}

	return nil
}
