package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/quarrysec/quarry/pkg/config"
	"github.com/quarrysec/quarry/pkg/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate detection rule definitions",
}

var watchChanges bool

func init() {
	rulesCheckCmd.Flags().BoolVar(&watchChanges, "watch", false, "Re-run the check when a rule source changes")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
}

var rulesListCmd = &cobra.Command{
	Use:   "list [PATH...]",
	Short: "List rule sources and how many rules each contributes",
	Long: `List every rule source quarry would load - the bundled rules when
enabled, sources from the configuration file, and any paths given as
arguments - together with the number of rules each contributes. Rule
bodies are not interpreted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		loader := rules.NewLoader()
		rows := pterm.TableData{{"SOURCE", "RULES"}}
		total := 0

		if cfg.Rules.Builtin {
			sources, err := rules.BuiltinSources()
			if err != nil {
				return err
			}
			for _, src := range sources {
				rs, err := loader.FromSources([]rules.Source{src})
				if err != nil {
					return err
				}
				rows = append(rows, []string{src.Path + " (builtin)", strconv.Itoa(rs.Len())})
				total += rs.Len()
			}
		}

		for _, path := range rulePaths(cfg, args) {
			rs, err := loader.FromPaths([]string{path})
			if err != nil {
				return err
			}
			rows = append(rows, []string{path, strconv.Itoa(rs.Len())})
			total += rs.Len()
		}

		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return err
		}
		fmt.Printf("\n%d rules from %d sources\n", total, len(rows)-1)
		return nil
	},
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check [PATH...]",
	Short: "Load every rule source and report the first problem found",
	Long: `Load the bundled rules, the sources from the configuration file and
any paths given as arguments, exactly the way a scan would, and report
either the total rule count or the first error encountered. With --watch,
the check re-runs on every change to a watched source; each run is a
complete fresh load.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		paths := rulePaths(cfg, args)

		if !watchChanges {
			return checkRules(cfg, paths)
		}

		recheck := func() {
			if err := checkRules(cfg, paths); err != nil {
				fmt.Printf("FAIL: %v\n", err)
			}
		}
		recheck()
		return watchAndRecheck(paths, recheck)
	},
}

// rulePaths returns the filesystem rule sources in load order: configured
// paths first, then command-line arguments.
func rulePaths(cfg *config.Config, args []string) []string {
	paths := make([]string, 0, len(cfg.Rules.Paths)+len(args))
	paths = append(paths, cfg.Rules.Paths...)
	paths = append(paths, args...)
	return paths
}

// checkRules performs one complete load and prints the aggregate count.
func checkRules(cfg *config.Config, paths []string) error {
	loader := rules.NewLoader()
	rs := rules.NewRuleset()
	sources := 0

	if cfg.Rules.Builtin {
		builtin, err := loader.Builtin()
		if err != nil {
			return err
		}
		rs.Merge(builtin)
		sources++
	}

	if len(paths) > 0 {
		loaded, err := loader.FromPaths(paths)
		if err != nil {
			return err
		}
		rs.Merge(loaded)
		sources += len(paths)
	}

	fmt.Printf("OK: %d rules from %d sources\n", rs.Len(), sources)
	return nil
}
