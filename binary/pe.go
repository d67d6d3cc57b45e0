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
	"debug/pe"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"strings"

	bpdb "github.com/Binject/debug/pdb"

	"github.com/objscan/objscan/logger"
)

// COFF storage classes accepted for function symbols, from the PE/COFF
// spec's IMAGE_SYM_CLASS_* table.
const (
	imageSymClassStatic   = 3
	imageSymClassExternal = 2
	imageSymClassLabel    = 6
)

// imageSymDTypeFunction is COFFSymbol.Type's derived-type byte (the high
// byte) marking a symbol as a function.
const imageSymDTypeFunction = 2

func archFromPEMachine(m uint16) Arch {
	switch m {
	case pe.IMAGE_FILE_MACHINE_I386:
		return ArchX86
	case pe.IMAGE_FILE_MACHINE_AMD64:
		return ArchAMD64
	case pe.IMAGE_FILE_MACHINE_ARM:
		return ArchARM
	case pe.IMAGE_FILE_MACHINE_ARM64:
		return ArchAArch64
	case pe.IMAGE_FILE_MACHINE_ARMNT:
		// Thumb-2: reported as plain ARM, same as the original's mapping.
		return ArchARM
	default:
		return ArchUnknown
	}
}

func isFunctionSymbol(sym *pe.COFFSymbol) bool {
	derived := sym.Type >> 8
	base := sym.Type & 0xff
	if derived == imageSymDTypeFunction {
		return true
	}
	return base == 0x20 // IMAGE_SYM_TYPE_FUNCTION, typ == 0x20 exactly
}

// loadPE parses data.Main as a PE/COFF image, walking the raw COFF symbol
// table directly rather than debug/pe's higher-level Symbols() helper so
// the storage-class filter can be applied exactly as spec'd. Symbols come
// from the COFF symbol table only; procedure records in an attached PDB are
// not merged into the list.
func loadPE(data *Data) (*Binary, error) {
	pf, err := pe.NewFile(bytes.NewReader(data.Main))
	if err != nil {
		return nil, err
	}

	bits := Bits32
	if _, ok := pf.OptionalHeader.(*pe.OptionalHeader64); ok {
		bits = Bits64
	}

	var imageBase uint64
	switch oh := pf.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		imageBase = uint64(oh.ImageBase)
	case *pe.OptionalHeader64:
		imageBase = oh.ImageBase
	}

	b := &Binary{
		Data:      data,
		Container: ContainerPE,
		Arch:      archFromPEMachine(pf.Machine),
		Bits:      bits,
		Endian:    LittleEndian,
		Windows:   true,
	}

	type rawSym struct {
		name   string
		addr   uint64
		offset uint64
	}
	var accepted []rawSym

	for i := range pf.COFFSymbols {
		sym := &pf.COFFSymbols[i]

		if sym.Value == 0 {
			continue
		}
		if !isFunctionSymbol(sym) {
			continue
		}
		switch sym.StorageClass {
		case imageSymClassStatic, imageSymClassExternal, imageSymClassLabel:
		default:
			continue
		}

		secIdx := int(sym.SectionNumber) - 1
		if secIdx < 0 || secIdx >= len(pf.Sections) {
			logger.Logf(logger.Allow, "binary/pe", "symbol %q has no matching section", sym.Name)
			continue
		}
		sect := pf.Sections[secIdx]
		addr := imageBase + uint64(sect.VirtualAddress) + uint64(sym.Value)
		offset := uint64(sect.Offset) + uint64(sym.Value)

		accepted = append(accepted, rawSym{name: symbolName(pf, sym), addr: addr, offset: offset})
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].addr < accepted[j].addr })

	for i, sym := range accepted {
		name := b.arena.Intern(sym.name)
		demangled := b.arena.Intern(demangleName(sym.name))

		s := &Symbol{
			OriginalName:  name,
			DemangledName: demangled,
			Addr:          sym.addr,
			Offset:        sym.offset,
		}

		if i+1 < len(accepted) {
			s.Size = accepted[i+1].addr - sym.addr
		}
		// the last symbol's size stays 0: there is no higher-addressed
		// symbol to bound it against.

		b.Symbols = append(b.Symbols, s)
	}

	attachPEDebug(b, pf, data)

	return b, nil
}

// symbolName resolves a COFF symbol's name, following the auxiliary
// string-table indirection debug/pe already decodes for names longer
// than 8 bytes (sym.Name starting with "/").
func symbolName(pf *pe.File, sym *pe.COFFSymbol) string {
	name, err := sym.FullName(pf.StringTable)
	if err != nil {
		return strings.TrimRight(string(sym.Name[:]), "\x00")
	}
	return name
}

// imageDebugTypeCodeview is IMAGE_DEBUG_TYPE_CODEVIEW.
const imageDebugTypeCodeview = 2

// imageDirectoryEntryDebug indexes the optional header's data-directory
// array for the debug directory.
const imageDirectoryEntryDebug = 6

// attachPEDebug locates this image's PDB, preferring the embedded
// CodeView PDB70 debug-directory reference if that path exists on this
// machine, and falling back to a same-stem .pdb file beside the
// executable otherwise (the embedded reference is near-always an absolute
// path from the build machine, so the fallback is the common case in
// practice).
func attachPEDebug(b *Binary, pf *pe.File, data *Data) {
	path := pdbPathFromDebugDirectory(pf, data.Main)
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			logger.Logf(logger.Allow, "binary/pe", "embedded PDB path %s does not exist on this machine", path)
			path = ""
		}
	}
	if path == "" {
		path = pdbPathByStem(data.Path)
	}
	if path == "" {
		logger.Logf(logger.Allow, "binary/pe", "no PDB found for %s", data.Path)
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Logf(logger.Allow, "binary/pe", "cannot read PDB %s: %v", path, err)
		return
	}

	p, err := bpdb.Open(path)
	if err != nil {
		logger.Logf(logger.Allow, "binary/pe", "cannot parse PDB %s: %v", path, err)
		return
	}

	data.attachDebug(path, raw)
	b.PDB = p
}

// pdbPathFromDebugDirectory walks the image's IMAGE_DEBUG_DIRECTORY array
// looking for a CodeView PDB70 (RSDS) entry, returning the PDB path the
// linker recorded in it. debug/pe exposes no accessor for this directory,
// so its bytes are located and parsed by hand.
func pdbPathFromDebugDirectory(pf *pe.File, raw []byte) string {
	var rva, size uint32
	switch oh := pf.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		if imageDirectoryEntryDebug >= len(oh.DataDirectory) {
			return ""
		}
		dd := oh.DataDirectory[imageDirectoryEntryDebug]
		rva, size = dd.VirtualAddress, dd.Size
	case *pe.OptionalHeader64:
		if imageDirectoryEntryDebug >= len(oh.DataDirectory) {
			return ""
		}
		dd := oh.DataDirectory[imageDirectoryEntryDebug]
		rva, size = dd.VirtualAddress, dd.Size
	default:
		return ""
	}
	if rva == 0 || size == 0 {
		return ""
	}

	var sect *pe.Section
	for _, s := range pf.Sections {
		if rva >= s.VirtualAddress && rva < s.VirtualAddress+s.VirtualSize {
			sect = s
			break
		}
	}
	if sect == nil {
		return ""
	}
	fileOff := int64(sect.Offset) + int64(rva-sect.VirtualAddress)
	if fileOff < 0 || fileOff+int64(size) > int64(len(raw)) {
		return ""
	}
	dir := raw[fileOff : fileOff+int64(size)]

	const entrySize = 28
	for off := 0; off+entrySize <= len(dir); off += entrySize {
		entry := dir[off : off+entrySize]
		typ := binary.LittleEndian.Uint32(entry[12:16])
		if typ != imageDebugTypeCodeview {
			continue
		}
		dataSize := binary.LittleEndian.Uint32(entry[16:20])
		ptrRaw := binary.LittleEndian.Uint32(entry[24:28])
		if int64(ptrRaw)+int64(dataSize) > int64(len(raw)) {
			continue
		}
		cv := raw[ptrRaw : ptrRaw+dataSize]
		if len(cv) < 24 || string(cv[:4]) != "RSDS" {
			continue
		}
		// RSDS(4) + GUID(16) + Age(4) = 24 bytes, then a NUL-terminated path.
		pathBytes := cv[24:]
		if i := bytes.IndexByte(pathBytes, 0); i >= 0 {
			pathBytes = pathBytes[:i]
		}
		if len(pathBytes) > 0 {
			return string(pathBytes)
		}
	}
	return ""
}

// pdbPathByStem looks for a <name>.pdb file in the same directory as the
// executable.
func pdbPathByStem(exePath string) string {
	dir := filepath.Dir(exePath)
	stem := strings.TrimSuffix(filepath.Base(exePath), filepath.Ext(exePath))
	candidate := filepath.Join(dir, stem+".pdb")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
