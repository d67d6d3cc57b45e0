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
	"debug/macho"
	"os"
	"path/filepath"
	"sort"

	"github.com/objscan/objscan/logger"
)

// machoFunctionType is the whole n_type value of an N_FUN stab entry (the
// N_STAB bits 0xe0 are part of it); it marks a symbol-table entry that
// names a function.
const machoFunctionType = 0x24

func archFromMachOCPU(cpu macho.Cpu) Arch {
	switch cpu {
	case macho.CpuTypeX86:
		return ArchX86
	case macho.CpuTypeX86_64:
		return ArchAMD64
	case macho.CpuTypeArm:
		return ArchARM
	case macho.CpuTypeArm64:
		return ArchAArch64
	case macho.CpuTypePowerPC:
		return ArchPowerPC
	case macho.CpuTypePowerPC64:
		return ArchPowerPC64
	default:
		return ArchUnknown
	}
}

// loadMachO parses data.Main as a Mach-O file, picking the first embedded
// object out of a fat (universal) binary if necessary, then enumerating
// function symbols. Mach-O function symbols carry no size, so sizes are
// inferred from the gap to the next-higher distinct symbol address.
func loadMachO(data *Data) (*Binary, error) {
	mf, err := openMachO(data.Main)
	if err != nil {
		return nil, err
	}

	bits := Bits32
	if mf.Magic == macho.Magic64 {
		bits = Bits64
	}
	endian := LittleEndian
	if mf.ByteOrder.String() == "BigEndian" {
		endian = BigEndian
	}

	b := &Binary{
		Data:      data,
		Container: ContainerMachO,
		Arch:      archFromMachOCPU(mf.Cpu),
		Bits:      bits,
		Endian:    endian,
	}

	if mf.Symtab == nil {
		attachMachODebug(b, data)
		return b, nil
	}

	type rawSym struct {
		name string
		addr uint64
	}
	var accepted []rawSym

	for _, sym := range mf.Symtab.Syms {
		if sym.Sect == 0 { // NO_SECT
			continue
		}
		if sym.Type&0x0e == 0x0e { // N_TYPE is N_SECT: a plain section symbol, never N_FUN
			continue
		}
		if sym.Type != machoFunctionType {
			continue
		}
		accepted = append(accepted, rawSym{name: sym.Name, addr: sym.Value})
	}

	// distinct, sorted addresses across *all* symbols (not just accepted
	// ones) so that size inference finds the true next boundary even when
	// the next symbol is a data symbol or otherwise unaccepted.
	addrSet := make(map[uint64]struct{})
	for _, sym := range mf.Symtab.Syms {
		addrSet[sym.Value] = struct{}{}
	}
	addrs := make([]uint64, 0, len(addrSet))
	for a := range addrSet {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	nextHigher := func(addr uint64) (uint64, bool) {
		i := sort.Search(len(addrs), func(i int) bool { return addrs[i] > addr })
		if i >= len(addrs) {
			return 0, false
		}
		return addrs[i], true
	}

	for _, sym := range accepted {
		name := b.arena.Intern(sym.name)
		demangled := b.arena.Intern(demangleName(sym.name))

		s := &Symbol{
			OriginalName:  name,
			DemangledName: demangled,
			Addr:          sym.addr,
		}

		if next, ok := nextHigher(sym.addr); ok {
			s.Size = next - sym.addr
		} else {
			// no successor: the original uses this as a sentinel meaning
			// "unusable for lookup" (see spec's open question on this).
			s.Addr = 0
		}

		b.Symbols = append(b.Symbols, s)
	}

	attachMachODebug(b, data)

	return b, nil
}

// openMachO opens either a plain Mach-O or the first embedded object of a
// fat (universal) binary.
func openMachO(raw []byte) (*macho.File, error) {
	if fat, err := macho.NewFatFile(bytes.NewReader(raw)); err == nil {
		if len(fat.Arches) == 0 {
			return nil, macho.ErrNotFat
		}
		return fat.Arches[0].File, nil
	}
	return macho.NewFile(bytes.NewReader(raw))
}

// attachMachODebug looks for an external DWARF payload in a sibling
// .dSYM bundle: <dir>/name.dSYM/Contents/Resources/DWARF/name, falling
// back to the first regular file in that DWARF directory if the exact
// name doesn't exist.
func attachMachODebug(b *Binary, data *Data) {
	dir := filepath.Dir(data.Path)
	name := filepath.Base(data.Path)

	dwarfDir := filepath.Join(dir, name+".dSYM", "Contents", "Resources", "DWARF")

	candidate := filepath.Join(dwarfDir, name)
	raw, err := os.ReadFile(candidate)
	if err != nil {
		entries, derr := os.ReadDir(dwarfDir)
		if derr != nil {
			logger.Logf(logger.Allow, "binary/macho", "no external dSYM found for %s", data.Path)
			return
		}
		found := false
		for _, e := range entries {
			if e.Type().IsRegular() {
				candidate = filepath.Join(dwarfDir, e.Name())
				raw, err = os.ReadFile(candidate)
				found = err == nil
				break
			}
		}
		if !found {
			logger.Logf(logger.Allow, "binary/macho", "dSYM directory %s has no usable member", dwarfDir)
			return
		}
	}

	dwarfFile, err := openMachO(raw)
	if err != nil {
		logger.Logf(logger.Allow, "binary/macho", "external dSYM %s is not a valid Mach-O: %v", candidate, err)
		return
	}

	d, err := dwarfFile.DWARF()
	if err != nil {
		logger.Logf(logger.Allow, "binary/macho", "external dSYM %s has no DWARF data: %v", candidate, err)
		return
	}

	data.attachDebug(candidate, raw)
	b.DWARF = d
}
