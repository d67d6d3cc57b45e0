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
	"github.com/objscan/objscan/render"
)

var (
	disasmBinaryPath   string
	disasmManifestPath string
	disasmRelease      bool
	disasmJumps        bool
	disasmBytes        bool
	disasmSource       bool
	disasmNoAddr       bool
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <needle>",
	Short: "Disassemble the first function symbol matching needle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveBinaryPath(disasmBinaryPath, disasmManifestPath, disasmRelease)
		if err != nil {
			return err
		}

		out, err := disasm.Disassemble(path, args[0], render.Options{
			Jumps:  disasmJumps,
			Bytes:  disasmBytes,
			Source: disasmSource,
			NoAddr: disasmNoAddr,
		})
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	f := disasmCmd.Flags()
	f.StringVarP(&disasmBinaryPath, "binary", "b", "", "path to the binary to disassemble (built from the current module if omitted)")
	f.StringVar(&disasmManifestPath, "manifest-path", "", "path to the Go module root consulted when -b is omitted")
	f.BoolVar(&disasmRelease, "release", false, "build or select the release artifact instead of debug")
	f.BoolVar(&disasmJumps, "jumps", false, "draw inner-jump arrows alongside the listing")
	f.BoolVar(&disasmBytes, "bytes", false, "print each instruction's raw bytes")
	f.BoolVar(&disasmSource, "source", false, "interleave source lines from debug information")
	f.BoolVar(&disasmNoAddr, "no-addr", false, "suppress the address column")
}
