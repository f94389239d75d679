package rules

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/quarrysec/quarry/pkg/errors"
)

// ParseRuleset decodes a single rules document. The document must be a
// mapping whose "rules" key holds a sequence of rule records; records are
// returned in document order. The caller attributes errors to a path,
// which the parser itself has no notion of.
func ParseRuleset(data []byte) (*Ruleset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc ruleFile
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrRuleParse, "document is empty")
		}
		return nil, errors.Wrap(err, errors.ErrRuleParse, "malformed rules document")
	}
	if doc.Rules == nil {
		return nil, errors.New(errors.ErrRuleParse, "document has no rules list")
	}

	return &Ruleset{rules: doc.Rules}, nil
}
