package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/shortcut/decl"
)

// errConflicts is returned by check --strict when a keystroke is shared.
var errConflicts = errors.New("conflicting bindings found")

func newCheckCmd(e *env) *cobra.Command {
	var strict, normalize bool

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Load binding declarations and report conflicts",
		Long: `Load a TOML binding declaration file, print the resulting bindings and
list every keystroke bound to more than one action.

With --strict, conflicts make the command fail. With --normalize, the
declarations are printed back as TOML with canonical keystrokes instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(e, args[0], strict, normalize)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when conflicts are found")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "print normalized declarations as TOML")
	return cmd
}

func runCheck(e *env, path string, strict, normalize bool) error {
	f, err := decl.Load(path)
	if err != nil {
		return err
	}

	m := e.newManager()
	defer m.Dispose()

	actions, err := f.Apply(m)
	if err != nil {
		return err
	}
	e.logger.WithField("actions", len(actions)).Debug("declarations applied")

	if normalize {
		data, err := decl.FromRows(m.Rows()).Marshal()
		if err != nil {
			return err
		}
		_, err = e.out.Write(data)
		return err
	}

	conflicts := m.Conflicts()
	fmt.Fprintln(e.out, bindingsTable(m.Rows(), conflicts))
	fmt.Fprintln(e.out)

	if len(conflicts) == 0 {
		fmt.Fprintln(e.out, okStyle.Render(fmt.Sprintf("No conflicts (%d actions, %d keystrokes)", len(actions), m.Len())))
		return nil
	}

	style := warnStyle
	if strict {
		style = errStyle
	}
	fmt.Fprintln(e.out, style.Render(fmt.Sprintf("%d conflicting keystroke(s):", len(conflicts))))
	fmt.Fprintln(e.out, conflictsTable(conflicts))

	if strict {
		return errConflicts
	}
	return nil
}
