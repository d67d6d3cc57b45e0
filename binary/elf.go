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
	"debug/elf"

	"github.com/objscan/objscan/logger"
)

func archFromELFMachine(m elf.Machine) Arch {
	switch m {
	case elf.EM_SPARC, elf.EM_SPARC32PLUS, elf.EM_SPARCV9:
		return ArchSPARC
	case elf.EM_386:
		return ArchX86
	case elf.EM_MIPS:
		return ArchMIPS
	case elf.EM_PPC:
		return ArchPowerPC
	case elf.EM_PPC64:
		return ArchPowerPC64
	case elf.EM_ARM:
		return ArchARM
	case elf.EM_X86_64:
		return ArchAMD64
	case elf.EM_AARCH64:
		return ArchAArch64
	case elf.EM_RISCV:
		return ArchRiscV
	case elf.EM_68K:
		return ArchM68K
	default:
		return ArchUnknown
	}
}

// loadELF parses data.Main as an ELF file, enumerating function symbols
// with a non-zero size and resolving each one's file offset through its
// owning section.
func loadELF(data *Data) (*Binary, error) {
	ef, err := elf.NewFile(bytes.NewReader(data.Main))
	if err != nil {
		return nil, err
	}

	bits := Bits32
	if ef.Class == elf.ELFCLASS64 {
		bits = Bits64
	}
	endian := LittleEndian
	if ef.Data == elf.ELFDATA2MSB {
		endian = BigEndian
	}

	b := &Binary{
		Data:      data,
		Container: ContainerELF,
		Arch:      archFromELFMachine(ef.Machine),
		Bits:      bits,
		Endian:    endian,
	}

	syms, err := ef.Symbols()
	if err != nil && len(syms) == 0 {
		// a stripped binary with only a dynamic symbol table is not an
		// error condition for our purposes
		syms, _ = ef.DynamicSymbols()
	}

	sections := ef.Sections

	for _, sym := range syms {
		if elf.ST_TYPE(sym.Info) != elf.STT_FUNC {
			continue
		}
		if sym.Size == 0 {
			continue
		}
		if int(sym.Section) < 0 || int(sym.Section) >= len(sections) {
			logger.Logf(logger.Allow, "binary/elf", "symbol %q has no matching section", sym.Name)
			continue
		}

		sect := sections[sym.Section]
		offset := sect.Offset + (sym.Value - sect.Addr)

		name := b.arena.Intern(sym.Name)
		demangled := b.arena.Intern(demangleName(sym.Name))

		b.Symbols = append(b.Symbols, &Symbol{
			OriginalName:  name,
			DemangledName: demangled,
			Addr:          sym.Value,
			Offset:        offset,
			Size:          sym.Size,
		})
	}

	attachELFDebug(b, ef)

	return b, nil
}

// attachELFDebug loads the inline DWARF section group, if present. ELF
// never needs an external debug file the way Mach-O or PE do, so this is
// simpler than its counterparts.
func attachELFDebug(b *Binary, ef *elf.File) {
	d, err := ef.DWARF()
	if err != nil {
		logger.Logf(logger.Allow, "binary/elf", "no DWARF data: %v", err)
		return
	}
	b.DWARF = d
}
