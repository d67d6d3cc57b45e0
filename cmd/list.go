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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/objscan/objscan/disasm"
)

var (
	listBinaryPath   string
	listManifestPath string
	listRelease      bool
)

var listCmd = &cobra.Command{
	Use:   "list <needle>",
	Short: "List every function symbol matching needle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveBinaryPath(listBinaryPath, listManifestPath, listRelease)
		if err != nil {
			return err
		}

		symbols, err := disasm.List(path, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, sym := range symbols {
			fmt.Fprintln(out, sym.DemangledName)
		}
		return nil
	},
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listBinaryPath, "binary", "b", "", "path to the binary to search (built from the current module if omitted)")
	f.StringVar(&listManifestPath, "manifest-path", "", "path to the Go module root consulted when -b is omitted")
	f.BoolVar(&listRelease, "release", false, "build or select the release artifact instead of debug")
}
