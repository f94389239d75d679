package rules

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/quarrysec/quarry/pkg/errors"
	"github.com/quarrysec/quarry/pkg/logging"
)

// Source is an in-memory rules document. Path is a logical label used
// only for error attribution and diagnostics; it is never opened.
type Source struct {
	Path string
	Data []byte
}

// Loader aggregates rule documents from files, directories and in-memory
// sources into a single Ruleset. Loading is fail-fast: the first bad
// source aborts the batch and the caller receives no Ruleset.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a loader reporting diagnostics to the package logger.
func NewLoader() *Loader {
	return &Loader{logger: logging.GetLogger("rules.loader")}
}

// NewLoaderWithLogger creates a loader reporting diagnostics to the given
// logger.
func NewLoaderWithLogger(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger}
}

// FromPaths loads rules from the given paths in order. Each path may be a
// rules file or a directory searched recursively for rules files. A path
// that is neither fails the whole load.
func (l *Loader) FromPaths(paths []string) (*Ruleset, error) {
	rs := NewRuleset()
	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.Mode().IsRegular():
			loaded, err := l.FromFile(path)
			if err != nil {
				return nil, err
			}
			rs.Merge(loaded)
		case err == nil && info.IsDir():
			loaded, err := l.FromDirectory(path)
			if err != nil {
				return nil, err
			}
			rs.Merge(loaded)
		default:
			return nil, errors.Newf(errors.ErrInvalidInput,
				"%s is neither a file nor a directory", path).
				WithDetail("path", path)
		}
	}

	l.logger.Debug().
		Int("rules", rs.Len()).
		Int("paths", len(paths)).
		Msg("Loaded rules from paths")

	return rs, nil
}

// FromFile loads rules from a single YAML document.
func (l *Loader) FromFile(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read rules file %s", path).
			WithDetail("path", path)
	}

	rs, err := ParseRuleset(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleParse, "failed to load rules from %s", path).
			WithDetail("path", path)
	}

	l.logger.Debug().
		Int("rules", rs.Len()).
		Str("path", path).
		Msg("Loaded rules file")

	return rs, nil
}

// FromFiles loads rules from the given files in order. Every path must be
// a rules document; no file-versus-directory classification happens.
func (l *Loader) FromFiles(paths []string) (*Ruleset, error) {
	rs := NewRuleset()
	for _, path := range paths {
		loaded, err := l.FromFile(path)
		if err != nil {
			return nil, err
		}
		rs.Merge(loaded)
	}

	l.logger.Debug().
		Int("rules", rs.Len()).
		Int("files", len(paths)).
		Msg("Loaded rules from files")

	return rs, nil
}

// FromDirectory loads rules from every YAML file found recursively under
// dir, in lexicographic path order.
func (l *Loader) FromDirectory(dir string) (*Ruleset, error) {
	files, err := FindRuleFiles(dir)
	if err != nil {
		return nil, err
	}

	l.logger.Debug().
		Int("files", len(files)).
		Str("dir", dir).
		Msg("Found rules files to load")

	return l.FromFiles(files)
}

// FromSources loads rules from in-memory documents, in order, without
// touching the filesystem. Errors are attributed to each source's logical
// path.
func (l *Loader) FromSources(sources []Source) (*Ruleset, error) {
	rs := NewRuleset()
	for _, src := range sources {
		loaded, err := ParseRuleset(src.Data)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRuleParse, "failed to load rules from %s", src.Path).
				WithDetail("path", src.Path)
		}
		rs.Merge(loaded)
	}

	l.logger.Debug().
		Int("rules", rs.Len()).
		Int("sources", len(sources)).
		Msg("Loaded rules from in-memory sources")

	return rs, nil
}

// FromPaths loads rules from files and directories using a default Loader.
func FromPaths(paths []string) (*Ruleset, error) {
	return NewLoader().FromPaths(paths)
}

// FromFiles loads rules from an explicit file list using a default Loader.
func FromFiles(paths []string) (*Ruleset, error) {
	return NewLoader().FromFiles(paths)
}

// FromDirectory loads rules from a directory tree using a default Loader.
func FromDirectory(dir string) (*Ruleset, error) {
	return NewLoader().FromDirectory(dir)
}

// FromSources loads rules from in-memory documents using a default Loader.
func FromSources(sources []Source) (*Ruleset, error) {
	return NewLoader().FromSources(sources)
}
