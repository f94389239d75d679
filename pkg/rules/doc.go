// Package rules loads detection-rule definitions from YAML documents and
// aggregates them into a single ordered Ruleset.
//
// Rule documents are mappings with a single meaningful key:
//
//	rules:
//	  - <rule record>
//	  - <rule record>
//
// Rule records are opaque to this package. Their schema belongs to the
// matching engine; the loader's only contract is to deserialize the
// envelope and preserve record order. Sources may be individual files,
// directories (scanned recursively for YAML files, following symlinks),
// or in-memory buffers with a logical path.
//
// Loading is fail-fast: the first malformed or unreadable source aborts
// the whole batch and no partial Ruleset is returned.
package rules
