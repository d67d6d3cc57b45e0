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

package lines

import (
	"sort"

	bpdb "github.com/Binject/debug/pdb"

	"github.com/objscan/objscan/logger"
)

// pdbSequence is one module's line-program record, expressed as an
// address range plus the line/file it maps to. The PDB format gives a
// line *range* per record rather than one line per address (unlike
// DWARF); rendering uses the first line of that range.
type pdbSequence struct {
	start, end uint64
	line       int
	file       string
}

type pdbModule struct {
	built bool
	seqs  []pdbSequence // sorted by start
}

// PDBMapper resolves addresses against a PE binary's PDB 7.0 debug
// information.
//
// The retrieval pack carries no usable source for
// github.com/Binject/debug/pdb (only its go.mod manifest survives), so
// the shape of Module/LineInfo below is reconstructed from the package's
// documented Microsoft-PDB-derived API rather than read from source; see
// DESIGN.md for this grounding gap.
type PDBMapper struct {
	pdb     *bpdb.PDB
	modules []*pdbModule

	prevModule int
}

// NewPDBMapper wraps an already-opened PDB handle. Modules are wrapped in
// lazy containers; nothing is parsed until the first lookup.
func NewPDBMapper(p *bpdb.PDB) *PDBMapper {
	m := &PDBMapper{pdb: p, prevModule: -1}
	if p == nil {
		return m
	}
	for range p.Modules {
		m.modules = append(m.modules, &pdbModule{})
	}
	return m
}

// Resolve implements Mapper. It tries the previously successful module
// first (code locality: adjacent addresses usually land in the same
// module) before falling back to a linear scan of the rest.
func (m *PDBMapper) Resolve(addr uint64) (string, int, bool) {
	if m.pdb == nil {
		return "", 0, false
	}

	if m.prevModule >= 0 && m.prevModule < len(m.modules) {
		if path, line, ok := m.lookupModule(m.prevModule, addr); ok {
			return path, line, true
		}
	}

	for i := range m.modules {
		if i == m.prevModule {
			continue
		}
		if path, line, ok := m.lookupModule(i, addr); ok {
			m.prevModule = i
			return path, line, true
		}
	}

	return "", 0, false
}

func (m *PDBMapper) lookupModule(idx int, addr uint64) (string, int, bool) {
	mod := m.modules[idx]
	m.buildModule(idx, mod)

	seq := findPDBSequence(mod.seqs, addr)
	if seq == nil {
		return "", 0, false
	}
	return seq.file, seq.line, true
}

// buildModule walks one module's line records, keeping only those whose
// section is resolvable, and computes each one's address range from the
// section's base address plus the record's offset.
func (m *PDBMapper) buildModule(idx int, mod *pdbModule) {
	if mod.built {
		return
	}
	mod.built = true

	if idx >= len(m.pdb.Modules) {
		return
	}
	module := m.pdb.Modules[idx]

	lines, err := module.Lines()
	if err != nil {
		logger.Logf(logger.Allow, "lines/pdb", "module %q has no line data: %v", module.Name, err)
		return
	}

	for _, ln := range lines {
		if ln.Section <= 0 {
			continue
		}
		base, ok := m.sectionBase(ln.Section)
		if !ok {
			continue
		}

		length := ln.Length
		if length < 1 {
			length = 1
		}
		start := base + ln.Offset
		mod.seqs = append(mod.seqs, pdbSequence{
			start: start,
			end:   start + length,
			line:  ln.LineStart,
			file:  m.fileName(ln.FileIndex),
		})
	}

	sort.Slice(mod.seqs, func(i, j int) bool { return mod.seqs[i].start < mod.seqs[j].start })
}

// sectionBase returns a 1-based section's absolute virtual address (image
// base plus the section's virtual address), the PDB equivalent of DWARF's
// per-unit low_pc.
func (m *PDBMapper) sectionBase(section int) (uint64, bool) {
	if section <= 0 || section > len(m.pdb.Sections) {
		return 0, false
	}
	s := m.pdb.Sections[section-1]
	return uint64(m.pdb.ImageBase) + uint64(s.VirtualAddress), true
}

// fileName resolves a line record's file index through the PDB string
// table. FileResolveStrategy and a base_directory are deliberately not
// applied here: the source this was distilled from leaves the same gap
// (see spec.md's Open Questions).
func (m *PDBMapper) fileName(idx int) string {
	if idx < 0 || idx >= len(m.pdb.Strings) {
		return ""
	}
	return m.pdb.Strings[idx]
}

func findPDBSequence(seqs []pdbSequence, addr uint64) *pdbSequence {
	lo, hi := 0, len(seqs)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		s := &seqs[mid]
		switch {
		case s.start > addr:
			hi = mid - 1
		case s.end <= addr:
			lo = mid + 1
		default:
			return s
		}
	}
	return nil
}
