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
	"os"
	"path/filepath"
	"testing"

	"github.com/objscan/objscan/pathconv"
)

func entryWithFields(fields ...dwarf.Field) *dwarf.Entry {
	return &dwarf.Entry{Tag: dwarf.TagCompileUnit, Field: fields}
}

func TestUnitAddressRangesAddressClassHighpc(t *testing.T) {
	e := entryWithFields(
		dwarf.Field{Attr: dwarf.AttrLowpc, Val: uint64(0x1000)},
		dwarf.Field{Attr: dwarf.AttrHighpc, Val: uint64(0x2000), Class: dwarf.ClassAddress},
	)

	got := unitAddressRanges(nil, e)
	if len(got) != 1 || got[0] != [2]uint64{0x1000, 0x2000} {
		t.Fatalf("unitAddressRanges() = %+v, want [[0x1000 0x2000]]", got)
	}
}

func TestUnitAddressRangesOffsetClassHighpc(t *testing.T) {
	e := entryWithFields(
		dwarf.Field{Attr: dwarf.AttrLowpc, Val: uint64(0x1000)},
		dwarf.Field{Attr: dwarf.AttrHighpc, Val: uint64(0x100), Class: dwarf.ClassConstant},
	)

	got := unitAddressRanges(nil, e)
	if len(got) != 1 || got[0] != [2]uint64{0x1000, 0x1100} {
		t.Fatalf("unitAddressRanges() = %+v, want [[0x1000 0x1100]] (highpc as offset)", got)
	}
}

func TestUnitAddressRangesMissingLowpc(t *testing.T) {
	e := entryWithFields()
	if got := unitAddressRanges(nil, e); got != nil {
		t.Errorf("unitAddressRanges() with no low_pc = %+v, want nil", got)
	}
}

func TestFindUnitTernaryProbe(t *testing.T) {
	m := &DWARFMapper{unitRanges: []unitRange{
		{start: 0x1000, end: 0x1100, unitIdx: 0},
		{start: 0x2000, end: 0x2100, unitIdx: 1},
		{start: 0x3000, end: 0x3100, unitIdx: 2},
	}}

	if idx := m.findUnit(0x2050); idx != 1 {
		t.Errorf("findUnit(0x2050) = %d, want 1", idx)
	}
	if idx := m.findUnit(0x1500); idx != -1 {
		t.Errorf("findUnit(0x1500) = %d, want -1 (gap between units)", idx)
	}
	if idx := m.findUnit(0x3000); idx != 2 {
		t.Errorf("findUnit(0x3000) = %d, want 2 (inclusive start)", idx)
	}
	if idx := m.findUnit(0x3100); idx != -1 {
		t.Errorf("findUnit(0x3100) = %d, want -1 (exclusive end)", idx)
	}
}

func TestFindSequenceAndFindLine(t *testing.T) {
	seqs := []dwarfSequence{
		{start: 0x1000, end: 0x1010, lines: []dwarfLine{
			{addr: 0x1000, file: "a.c", line: 1},
			{addr: 0x1004, file: "a.c", line: 2},
		}},
		{start: 0x2000, end: 0x2010, lines: []dwarfLine{
			{addr: 0x2000, file: "b.c", line: 10},
		}},
	}

	seq := findSequence(seqs, 0x1004)
	if seq == nil {
		t.Fatal("findSequence(0x1004) = nil")
	}
	ln := findLine(seq.lines, 0x1004)
	if ln == nil || ln.line != 2 {
		t.Errorf("findLine(0x1004) = %+v, want line 2", ln)
	}

	if findSequence(seqs, 0x1800) != nil {
		t.Error("findSequence(0x1800) should miss: address falls in the gap between sequences")
	}
}

func TestResolvePathDoesNotDoubleJoinCompDir(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	// preJoined is what stdlib's debug/dwarf LineReader actually hands
	// back in entry.File.Name: comp_dir and the file's directory entry
	// are already folded in. If resolvePath re-prepended comp_dir on top
	// of this, the candidate would double to .../src/src/main.c and
	// never exist.
	preJoined := filepath.Join(srcDir, "main.c")
	if err := os.WriteFile(preJoined, []byte("int main(){}"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := &DWARFMapper{
		conv:     pathconv.Native,
		strategy: pathconv.PreferRelative,
		baseDir:  "/nonexistent-base",
	}

	got := m.resolvePath(preJoined)
	if got != preJoined {
		t.Errorf("resolvePath(%q) = %q, want %q unchanged (must not re-prepend comp_dir)", preJoined, got, preJoined)
	}
}

func TestResolvePathJoinsBaseDirectoryForRelativeName(t *testing.T) {
	dir := t.TempDir()
	realFile := filepath.Join(dir, "main.c")
	if err := os.WriteFile(realFile, []byte("int main(){}"), 0o644); err != nil {
		t.Fatal(err)
	}

	// name is bare and relative (the compiler recorded no comp_dir);
	// PreferRelative should prepend base_directory to find it.
	m := &DWARFMapper{
		conv:     pathconv.Native,
		strategy: pathconv.PreferRelative,
		baseDir:  dir,
	}

	got := m.resolvePath("main.c")
	if got != realFile {
		t.Errorf("resolvePath() = %q, want %q", got, realFile)
	}
}

func TestResolvePathFallsBackToOppositeStrategy(t *testing.T) {
	dir := t.TempDir()
	realFile := filepath.Join(dir, "main.c")
	if err := os.WriteFile(realFile, []byte("int main(){}"), 0o644); err != nil {
		t.Fatal(err)
	}

	// PreferAbsolute leaves "main.c" bare on the first attempt, which
	// won't resolve against the test process's working directory; the
	// retry with the opposite (PreferRelative) strategy should join
	// base_directory and find it.
	m := &DWARFMapper{
		conv:     pathconv.Native,
		strategy: pathconv.PreferAbsolute,
		baseDir:  dir,
	}

	got := m.resolvePath("main.c")
	if got != realFile {
		t.Errorf("resolvePath() = %q, want %q", got, realFile)
	}
}
