package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/input/key"
)

func newParseCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "parse SPEC...",
		Short: "Print the canonical form of keystroke specifications",
		Long: `Parse each keystroke specification and print its canonical form.

Modifiers are case-insensitive and may appear in any order:

  keybind parse "shift+ctrl+f3" "alt+x"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(e, args)
		},
	}
}

func runParse(e *env, specs []string) error {
	rows := make([][]string, 0, len(specs))
	flagged := make(map[int]bool)
	invalid := 0

	for i, spec := range specs {
		canonical, ok := key.Normalize(spec)
		if !ok {
			invalid++
			flagged[i] = true
			canonical = "invalid"
		}
		rows = append(rows, []string{spec, canonical})
	}

	fmt.Fprintln(e.out, newTable([]string{"INPUT", "CANONICAL"}, rows, flagged))

	if invalid > 0 {
		return fmt.Errorf("%d invalid keystroke(s)", invalid)
	}
	return nil
}
