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

package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/objscan/objscan/binary"
	"github.com/objscan/objscan/decode"
	"github.com/objscan/objscan/filecache"
	"github.com/objscan/objscan/jumpanalysis"
	"github.com/objscan/objscan/lines"
	"github.com/objscan/objscan/rasterize"
)

var (
	mnemonicColor = color.New(color.FgBlue)
	sourceColor   = color.New(color.FgGreen, color.Bold)
)

// Options toggles the optional listing features, one per CLI flag.
type Options struct {
	Jumps  bool // --jumps: print the lane-arrow column
	Bytes  bool // --bytes: print the raw instruction-byte column
	Source bool // --source: interleave source lines via the line mapper
	NoAddr bool // --no-addr: suppress the address column
}

// Listing renders one function's disassembly.
func Listing(sym *binary.Symbol, insts []decode.Instruction, grid *rasterize.Grid, patches jumpanalysis.OperandPatches, mapper lines.Mapper, cache *filecache.Cache, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s:\n", sym.DemangledName)

	m := measure(insts, patches, opts)

	var prevPath string
	prevLine := -1

	for i, inst := range insts {
		if opts.Source {
			if path, line, ok := mapper.Resolve(inst.Addr); ok {
				if path != prevPath || line != prevLine {
					if text, ok := cache.Line(path, line); ok {
						sourceColor.Fprintln(&b, text)
					}
					prevPath, prevLine = path, line
				}
			}
		}

		b.WriteString("  ")

		if !opts.NoAddr {
			fmt.Fprintf(&b, "%0*x:    ", m.addrWidth, inst.Addr)
		}

		if opts.Bytes {
			b.WriteString(padRight(byteColumn(inst.Bytes), m.bytesWidth+4))
		}

		if opts.Jumps && grid != nil {
			for col := 0; col < grid.Width; col++ {
				b.WriteRune(glyphOrSpace(grid.Cell(i, col)))
			}
			b.WriteString(" ")
		}

		mnemonicColor.Fprintf(&b, "%-*s ", m.mnemonicWidth, inst.Mnemonic)

		if sym, ok := patches[i]; ok {
			b.WriteString(sym.ShortName())
		} else {
			b.WriteString(inst.Operands)
		}

		b.WriteString("\n")
	}

	return b.String()
}

func glyphOrSpace(c rasterize.Cell) rune {
	if c.Empty() {
		return ' '
	}
	return c.Glyph()
}

type widths struct {
	addrWidth     int
	bytesWidth    int
	mnemonicWidth int
	operandsWidth int
}

// measure is the listing's measurement pass: one walk over the
// instructions fixing every column's width before anything is emitted.
func measure(insts []decode.Instruction, patches jumpanalysis.OperandPatches, opts Options) widths {
	var m widths
	m.addrWidth = 1

	for i, inst := range insts {
		if w := len(fmt.Sprintf("%x", inst.Addr)); w > m.addrWidth {
			m.addrWidth = w
		}
		if n := len(inst.Bytes); n > 0 {
			if w := n*3 - 1; w > m.bytesWidth {
				m.bytesWidth = w
			}
		}
		if w := len(inst.Mnemonic); w > m.mnemonicWidth {
			m.mnemonicWidth = w
		}

		operand := inst.Operands
		if sym, ok := patches[i]; ok {
			operand = sym.ShortName()
		}
		if w := len(operand); w > m.operandsWidth {
			m.operandsWidth = w
		}
	}

	return m
}

func byteColumn(raw []byte) string {
	var b strings.Builder
	for i, by := range raw {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", by)
	}
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
