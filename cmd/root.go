// This file is part of objscan.
//
// objscan is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// objscan is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with objscan.  If not, see <https://www.gnu.org/licenses/>.

// Package cmd wires objscan's two operations, disasm and list, into a
// Cobra command tree. main.main does nothing but call Execute.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/objscan/objscan/buildtool"
)

// RootCmd is the base command; it has no action of its own.
var RootCmd = &cobra.Command{
	Use:   "objscan",
	Short: "Locate a function symbol in a compiled binary and render its annotated disassembly",
	// errors are formatted and reported by main, not by Cobra's own
	// usage-dump-on-error behaviour.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.AddCommand(disasmCmd, listCmd)
}

// Execute runs the selected subcommand. Called once, from main.main.
func Execute() error {
	return RootCmd.Execute()
}

// resolveBinaryPath returns binaryPath unchanged if the caller set -b, and
// otherwise falls back to building or locating one from the module rooted
// at manifestPath, per spec.md §6's build-tool integration.
func resolveBinaryPath(binaryPath, manifestPath string, release bool) (string, error) {
	if binaryPath != "" {
		return binaryPath, nil
	}
	return buildtool.Resolve(manifestPath, release)
}
