package rules

import (
	"embed"
	"sort"

	"github.com/quarrysec/quarry/pkg/errors"
)

//go:embed builtin/*.yml
var builtinFS embed.FS

// BuiltinSources returns the rule documents bundled with the binary as
// in-memory sources, sorted by logical path.
func BuiltinSources() ([]Source, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read embedded rules")
	}

	sources := make([]Source, 0, len(entries))
	for _, entry := range entries {
		name := "builtin/" + entry.Name()
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read embedded rules file %s", name).
				WithDetail("path", name)
		}
		sources = append(sources, Source{Path: name, Data: data})
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })

	return sources, nil
}

// Builtin loads the detection rules bundled with the binary.
func (l *Loader) Builtin() (*Ruleset, error) {
	sources, err := BuiltinSources()
	if err != nil {
		return nil, err
	}
	return l.FromSources(sources)
}

// Builtin loads the bundled detection rules using a default Loader.
func Builtin() (*Ruleset, error) {
	return NewLoader().Builtin()
}
