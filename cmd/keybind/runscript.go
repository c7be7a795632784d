package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/plugin/lua"
)

func newRunCmd(e *env) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Run a Lua script against an empty registry and print the result",
		Long: `Run a Lua script with the keys module loaded, then print the bindings
the script left behind.

  local keys = require("keys")
  keys.set("ctrl+s", "file.save")`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(e, args[0], timeout)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", lua.DefaultExecutionTimeout, "script execution timeout")
	return cmd
}

func runScript(e *env, path string, timeout time.Duration) error {
	m := e.newManager()
	defer m.Dispose()

	state := lua.NewState(lua.WithExecutionTimeout(timeout))
	defer state.Close()

	mod := lua.NewKeysModule(m, e.logger)
	if err := mod.Register(state); err != nil {
		return err
	}
	if err := state.DoFile(path); err != nil {
		return fmt.Errorf("running %s: %w", path, err)
	}

	fmt.Fprintln(e.out, bindingsTable(m.Rows(), m.Conflicts()))
	return nil
}
