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

package binary

import (
	"bytes"
	"debug/dwarf"
	"encoding/binary"
	"sort"

	bpdb "github.com/Binject/debug/pdb"

	"github.com/objscan/objscan/curated"
)

// ContainerKind identifies the executable container format a Binary was
// parsed from.
type ContainerKind int

const (
	ContainerUnknown ContainerKind = iota
	ContainerELF
	ContainerPE
	ContainerMachO
)

func (c ContainerKind) String() string {
	switch c {
	case ContainerELF:
		return "ELF"
	case ContainerPE:
		return "PE"
	case ContainerMachO:
		return "Mach-O"
	default:
		return "unknown"
	}
}

// Binary is a loaded executable reduced to its symbols and, where
// available, its debug information.
type Binary struct {
	Data      *Data
	Container ContainerKind

	Arch   Arch
	Bits   Bits
	Endian Endian

	Symbols []*Symbol

	// DWARF and PDB are mutually exclusive in practice (one container,
	// one debug format) but both fields exist so that callers don't need
	// a type switch to find out which is populated.
	DWARF *dwarf.Data
	PDB   *bpdb.PDB

	// Windows is true when this Binary's native debug-path convention is
	// Windows-style (PE+PDB); callers use it to pick a PathConverter.
	Windows bool

	arena Arena
}

// SymbolsByAddr returns a copy of the Binary's symbols sorted by address,
// ascending. Symbols whose address could not be established (Addr == 0)
// sort first and are typically filtered out by callers before use.
func (b *Binary) SymbolsByAddr() []*Symbol {
	out := make([]*Symbol, len(b.Symbols))
	copy(out, b.Symbols)
	sort.Slice(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out
}

// SymbolAt returns the symbol whose Addr exactly matches addr, if any.
func (b *Binary) SymbolAt(addr uint64) (*Symbol, bool) {
	for _, s := range b.Symbols {
		if s.Addr == addr {
			return s, true
		}
	}
	return nil, false
}

// containerKind sniffs the file magic to pick a loader, mirroring the
// "loader is selected by file magic" rule in the disassembly pipeline.
func containerKind(b []byte) ContainerKind {
	switch {
	case len(b) >= 4 && bytes.Equal(b[:4], []byte{0x7f, 'E', 'L', 'F'}):
		return ContainerELF
	case len(b) >= 2 && b[0] == 'M' && b[1] == 'Z':
		return ContainerPE
	case len(b) >= 4 && isMachOMagic(b[:4]):
		return ContainerMachO
	case len(b) >= 8 && bytes.Equal(b[:2], []byte{'!', '<'}):
		// ar/archive magic ("!<arch>\n") - recognised but not a binary we
		// can disassemble.
		return ContainerUnknown
	default:
		return ContainerUnknown
	}
}

func isMachOMagic(b []byte) bool {
	v := binary.BigEndian.Uint32(b)
	switch v {
	case 0xfeedface, 0xfeedfacf, 0xcefaedfe, 0xcffaedfe, // 32/64-bit, either endian
		0xcafebabe, 0xbebafeca: // fat/universal, either endian
		return true
	default:
		return false
	}
}

// Load reads path from disk and dispatches to the loader matching its
// container format.
func Load(path string) (*Binary, error) {
	data, err := LoadData(path)
	if err != nil {
		return nil, curated.Errorf(curated.BinaryReadError, err)
	}
	return LoadBinary(data)
}

// LoadBinary dispatches a Data already read from disk to the loader
// matching its container format. Exposed separately from Load so callers
// that already have a Data (tests, or a caller juggling both the main and
// an external debug file) don't need a round-trip through the filesystem.
func LoadBinary(data *Data) (*Binary, error) {
	switch containerKind(data.Main) {
	case ContainerELF:
		return loadELF(data)
	case ContainerPE:
		return loadPE(data)
	case ContainerMachO:
		return loadMachO(data)
	default:
		return nil, curated.Errorf(curated.UnsupportedBinaryFormat, "archive or unrecognised magic")
	}
}
