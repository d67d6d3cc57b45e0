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

package disasm

import (
	"os"
	"runtime"

	"github.com/objscan/objscan/binary"
	"github.com/objscan/objscan/curated"
	"github.com/objscan/objscan/decode"
	"github.com/objscan/objscan/filecache"
	"github.com/objscan/objscan/jumpanalysis"
	"github.com/objscan/objscan/lines"
	"github.com/objscan/objscan/pathconv"
	"github.com/objscan/objscan/rasterize"
	"github.com/objscan/objscan/render"
	"github.com/objscan/objscan/symbolmatch"
)

// List loads binaryPath and returns every symbol whose demangled name
// matches needle.
func List(binaryPath, needle string) ([]*binary.Symbol, error) {
	b, err := binary.Load(binaryPath)
	if err != nil {
		return nil, err
	}
	return ListSymbols(b, needle)
}

// ListSymbols returns every symbol of an already-loaded Binary whose
// demangled name matches needle.
func ListSymbols(b *binary.Binary, needle string) ([]*binary.Symbol, error) {
	matches := symbolmatch.List(needle, b.Symbols)
	if len(matches) == 0 {
		return nil, curated.Errorf(curated.NoSymbolMatch, needle)
	}
	return matches, nil
}

// Disassemble loads binaryPath, finds the first symbol matching needle,
// and renders its annotated listing.
func Disassemble(binaryPath, needle string, opts render.Options) (string, error) {
	b, err := binary.Load(binaryPath)
	if err != nil {
		return "", err
	}
	return DisassembleSymbol(b, needle, opts)
}

// DisassembleSymbol finds the first symbol of an already-loaded Binary
// matching needle and renders its annotated listing.
func DisassembleSymbol(b *binary.Binary, needle string, opts render.Options) (string, error) {
	sym, ok := symbolmatch.First(needle, b.Symbols)
	if !ok {
		return "", curated.Errorf(curated.NoSymbolMatch, needle)
	}

	if sym.Addr == 0 || sym.Size == 0 {
		return "", curated.Errorf(curated.UnsupportedBinaryFormatOp, b.Container.String(), "disassemble a symbol with no usable address/size")
	}

	data := b.Data.Main
	if sym.Offset+sym.Size > uint64(len(data)) {
		return "", curated.Errorf(curated.BinaryReadError, "symbol range exceeds file size")
	}

	code := data[sym.Offset : sym.Offset+sym.Size]
	insts := decode.Function(code, sym.Addr)

	table, patches := jumpanalysis.Analyze(insts, b.Symbols)
	jumpanalysis.AssignLanes(&table)

	var grid *rasterize.Grid
	if opts.Jumps {
		grid = rasterize.Render(table, len(insts))
	}

	mapper := buildMapper(b)
	cache := filecache.New()

	return render.Listing(sym, insts, grid, patches, mapper, cache, opts), nil
}

// buildMapper picks the Mapper matching whichever debug format (if any)
// the loader attached to b.
func buildMapper(b *binary.Binary) lines.Mapper {
	conv := pathconv.ForBinaryHost(b.Windows, runtime.GOOS == "windows")
	baseDir, _ := os.Getwd()

	switch {
	case b.DWARF != nil:
		m, err := lines.NewDWARFMapper(b.DWARF, conv, pathconv.PreferRelative, baseDir)
		if err != nil {
			return lines.NoOp{}
		}
		return m
	case b.PDB != nil:
		return lines.NewPDBMapper(b.PDB)
	default:
		return lines.NoOp{}
	}
}
