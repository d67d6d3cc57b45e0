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

package decode

import "testing"

func TestFunctionDecodesSimpleSequence(t *testing.T) {
	// push rbp; mov rbp, rsp; pop rbp; ret
	data := []byte{0x55, 0x48, 0x89, 0xe5, 0x5d, 0xc3}

	insts := Function(data, 0x1000)
	if len(insts) != 4 {
		t.Fatalf("Function() decoded %d instructions, want 4", len(insts))
	}

	if insts[0].Addr != 0x1000 || insts[0].Len() != 1 {
		t.Errorf("insts[0] = %+v, want addr 0x1000 len 1", insts[0])
	}
	if insts[1].Addr != 0x1001 || insts[1].Len() != 3 {
		t.Errorf("insts[1] = %+v, want addr 0x1001 len 3", insts[1])
	}
	if insts[3].Mnemonic == "" {
		t.Errorf("insts[3].Mnemonic should not be empty")
	}

	total := 0
	for _, in := range insts {
		total += in.Len()
	}
	if total != len(data) {
		t.Errorf("decoded %d total bytes, want %d", total, len(data))
	}
}

func TestFunctionRecoversFromBadBytes(t *testing.T) {
	data := []byte{0x06, 0x06, 0x06, 0x06, 0xc3} // PUSH ES: invalid in 64-bit mode, then ret
	insts := Function(data, 0)

	if len(insts) == 0 {
		t.Fatalf("Function() should have produced placeholder instructions")
	}
	last := insts[len(insts)-1]
	if last.Mnemonic != "RET" {
		t.Errorf("last instruction = %q, want RET to be recovered after bad bytes", last.Mnemonic)
	}
}
