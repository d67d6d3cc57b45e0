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

package jumpanalysis

import (
	"testing"

	"github.com/objscan/objscan/binary"
	"github.com/objscan/objscan/decode"
)

func TestAnalyzeFindsInnerJump(t *testing.T) {
	// 0: xor eax, eax      (31 c0)
	// 2: jmp 0x0            (eb fc)   -> targets instruction 0
	data := []byte{0x31, 0xc0, 0xeb, 0xfc}
	insts := decode.Function(data, 0)

	table, patches := Analyze(insts, nil)

	if len(table.Jumps) != 1 {
		t.Fatalf("Analyze() found %d jumps, want 1; insts=%+v", len(table.Jumps), insts)
	}
	j := table.Jumps[0]
	if j.SourceIndex != 1 || j.TargetIndex != 0 {
		t.Errorf("jump = %+v, want source 1 target 0", j)
	}
	if len(patches) != 0 {
		t.Errorf("Analyze() found %d operand patches, want 0", len(patches))
	}
}

func TestAnalyzeFindsOperandPatch(t *testing.T) {
	// call rel32 to an address matching an external symbol.
	// e8 rel32: target = nextIP + rel
	data := []byte{0xe8, 0x00, 0x00, 0x00, 0x00} // call next instruction's address
	insts := decode.Function(data, 0x1000)

	target := uint64(0x1005) // nextIP (0x1000+5) + 0
	sym := &binary.Symbol{OriginalName: "target_fn", Addr: target}

	table, patches := Analyze(insts, []*binary.Symbol{sym})

	if len(table.Jumps) != 0 {
		t.Errorf("Analyze() found %d inner jumps, want 0", len(table.Jumps))
	}
	if got := patches[0]; got != sym {
		t.Errorf("patches[0] = %v, want %v", got, sym)
	}
}

func TestAnalyzeSkipsSelfJump(t *testing.T) {
	data := []byte{0xeb, 0xfe} // jmp $ (2-byte self-loop)
	insts := decode.Function(data, 0)

	table, _ := Analyze(insts, nil)
	if len(table.Jumps) != 0 {
		t.Errorf("Analyze() should skip a jump targeting itself, got %+v", table.Jumps)
	}
}
