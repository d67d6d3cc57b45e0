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
	"debug/dwarf"
	"io"
	"os"
	"sort"

	"github.com/objscan/objscan/logger"
	"github.com/objscan/objscan/pathconv"
)

// dwarfLine is one row of a sequence's line table.
type dwarfLine struct {
	addr uint64
	file string
	line int
}

// dwarfSequence is one contiguous address range sharing a line program
// run, bounded by the compiler's end_sequence marker.
type dwarfSequence struct {
	start, end uint64
	lines      []dwarfLine // sorted by addr
}

// dwarfUnit holds one compile unit's low/high bounds (or explicit ranges)
// plus its comp_dir, and lazily materialises its sequences on first
// lookup.
//
// compDir is kept with the unit per the data model even though
// resolvePath no longer joins it onto a file name itself: stdlib's
// debug/dwarf line reader already folds comp_dir (and the file's
// directory entry) into LineEntry.File.Name before this package ever
// sees it, for both the DWARF<=4 and DWARF5 file-table encodings.
type dwarfUnit struct {
	entry   *dwarf.Entry
	compDir string
	built   bool
	seqs    []dwarfSequence
}

type unitRange struct {
	start, end uint64
	unitIdx    int
}

// DWARFMapper resolves addresses using an ELF/Mach-O binary's DWARF debug
// section group.
type DWARFMapper struct {
	data       *dwarf.Data
	units      []*dwarfUnit
	unitRanges []unitRange // sorted by start

	conv     pathconv.Converter
	strategy pathconv.FileResolveStrategy
	baseDir  string
}

// NewDWARFMapper enumerates compile units, reading only each unit's first
// DIE, and builds the sorted global unit-range index. Per-unit line
// programs are not processed until a lookup actually needs them.
func NewDWARFMapper(data *dwarf.Data, conv pathconv.Converter, strategy pathconv.FileResolveStrategy, baseDir string) (*DWARFMapper, error) {
	m := &DWARFMapper{data: data, conv: conv, strategy: strategy, baseDir: baseDir}

	r := data.Reader()
	for {
		entry, err := r.Next()
		if err != nil {
			return nil, err
		}
		if entry == nil {
			break
		}
		if entry.Tag != dwarf.TagCompileUnit {
			r.SkipChildren()
			continue
		}

		compDir, _ := entry.Val(dwarf.AttrCompDir).(string)
		u := &dwarfUnit{entry: entry, compDir: compDir}
		unitIdx := len(m.units)
		m.units = append(m.units, u)

		for _, rg := range unitAddressRanges(data, entry) {
			m.unitRanges = append(m.unitRanges, unitRange{start: rg[0], end: rg[1], unitIdx: unitIdx})
		}

		r.SkipChildren()
	}

	sort.Slice(m.unitRanges, func(i, j int) bool { return m.unitRanges[i].start < m.unitRanges[j].start })

	return m, nil
}

// unitAddressRanges derives a compile unit's address ranges: the ranges
// table if DW_AT_ranges is present, else the low/high pc pair, else
// low plus an offset-form high.
func unitAddressRanges(data *dwarf.Data, entry *dwarf.Entry) [][2]uint64 {
	if _, ok := entry.Val(dwarf.AttrRanges).(int64); ok {
		if rs, err := data.Ranges(entry); err == nil && len(rs) > 0 {
			out := make([][2]uint64, len(rs))
			for i, r := range rs {
				out[i] = [2]uint64{r[0], r[1]}
			}
			return out
		}
	}

	low, ok := entry.Val(dwarf.AttrLowpc).(uint64)
	if !ok {
		return nil
	}

	field := entry.AttrField(dwarf.AttrHighpc)
	if field == nil {
		return nil
	}

	switch v := field.Val.(type) {
	case uint64:
		if field.Class == dwarf.ClassAddress {
			return [][2]uint64{{low, v}}
		}
		return [][2]uint64{{low, low + v}}
	case int64:
		return [][2]uint64{{low, low + uint64(v)}}
	default:
		return nil
	}
}

// findUnit performs the spec's ternary probe over the sorted unit-range
// table: greater-than if the probe starts after addr, less-than if the
// probe ends at or before addr, equal otherwise.
func (m *DWARFMapper) findUnit(addr uint64) int {
	lo, hi := 0, len(m.unitRanges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		probe := m.unitRanges[mid]
		switch {
		case probe.start > addr:
			hi = mid - 1
		case probe.end <= addr:
			lo = mid + 1
		default:
			return probe.unitIdx
		}
	}
	return -1
}

// Resolve implements Mapper.
func (m *DWARFMapper) Resolve(addr uint64) (string, int, bool) {
	idx := m.findUnit(addr)
	if idx < 0 {
		return "", 0, false
	}
	u := m.units[idx]
	m.build(u)

	seq := findSequence(u.seqs, addr)
	if seq == nil {
		return "", 0, false
	}
	ln := findLine(seq.lines, addr)
	if ln == nil {
		return "", 0, false
	}
	return m.resolvePath(ln.file), ln.line, true
}

// build materialises a unit's line-program sequences on first use by
// streaming its line program rows. A row whose address repeats the
// previous row's mutates that row's (file, line) instead of appending
// (coalescing zero-length steps). end_sequence closes the run collected
// so far; a run based at address 0 is discarded as an invalid sequence.
func (m *DWARFMapper) build(u *dwarfUnit) {
	if u.built {
		return
	}
	u.built = true

	lr, err := m.data.LineReader(u.entry)
	if err != nil || lr == nil {
		if err != nil {
			logger.Logf(logger.Allow, "lines/dwarf", "no line program: %v", err)
		}
		return
	}

	var cur []dwarfLine
	seqStart := uint64(0)
	haveStart := false

	var entry dwarf.LineEntry
	for {
		if err := lr.Next(&entry); err != nil {
			if err != io.EOF {
				logger.Logf(logger.Allow, "lines/dwarf", "line program read error: %v", err)
			}
			break
		}

		if !haveStart {
			seqStart = entry.Address
			haveStart = true
		}

		if entry.EndSequence {
			if seqStart != 0 {
				u.seqs = append(u.seqs, dwarfSequence{start: seqStart, end: entry.Address, lines: cur})
			}
			cur = nil
			haveStart = false
			continue
		}

		file := ""
		if entry.File != nil {
			file = entry.File.Name
		}

		if len(cur) > 0 && cur[len(cur)-1].addr == entry.Address {
			cur[len(cur)-1].file = file
			cur[len(cur)-1].line = entry.Line
			continue
		}

		cur = append(cur, dwarfLine{addr: entry.Address, file: file, line: entry.Line})
	}

	sort.Slice(u.seqs, func(i, j int) bool { return u.seqs[i].start < u.seqs[j].start })
}

// findSequence binary-searches seqs (sorted, non-overlapping) for the one
// whose [start, end) range contains addr.
func findSequence(seqs []dwarfSequence, addr uint64) *dwarfSequence {
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

// findLine binary-searches a sequence's lines (sorted by addr, ascending)
// for an exact address match.
func findLine(ls []dwarfLine, addr uint64) *dwarfLine {
	lo, hi := 0, len(ls)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case ls[mid].addr > addr:
			hi = mid - 1
		case ls[mid].addr < addr:
			lo = mid + 1
		default:
			return &ls[mid]
		}
	}
	return nil
}

// resolvePath applies the configured FileResolveStrategy and Converter to
// name, retrying with the opposite strategy if the first candidate doesn't
// exist on disk. name is already the fully-joined comp_dir/directory/file
// path stdlib's line reader produced; resolvePath must not re-prepend
// comp_dir itself, or the result doubles it (e.g.
// "/build/obj/build/obj/src/main.c").
func (m *DWARFMapper) resolvePath(name string) string {
	first := pathconv.Resolve(m.strategy, m.conv, m.baseDir, "", "", name)
	if _, err := os.Stat(first); err == nil {
		return first
	}

	second := pathconv.Resolve(m.strategy.Other(), m.conv, m.baseDir, "", "", name)
	if _, err := os.Stat(second); err == nil {
		return second
	}

	return first
}
