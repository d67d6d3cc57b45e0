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

import (
	"golang.org/x/arch/x86/x86asm"

	"github.com/objscan/objscan/logger"
)

// Instruction is one decoded x86-64 instruction, addressed within its
// owning function.
type Instruction struct {
	Addr  uint64
	Bytes []byte

	// Inst is the decoder's own structured result: opcode groups,
	// operands, and everything the jump analyzer needs to classify this
	// instruction. Nil for a byte range that failed to decode.
	Inst *x86asm.Inst

	// Mnemonic and Operands are the rendered text form, always populated
	// (falling back to "(bad)" when Inst is nil).
	Mnemonic string
	Operands string
}

// Len returns the instruction's length in bytes.
func (in Instruction) Len() int {
	return len(in.Bytes)
}

// Function decodes every instruction in data (the byte range of one
// function), addressed starting at addr. A byte range that fails to
// decode is emitted as a single-byte "(bad)" placeholder and decoding
// resumes at the next byte, matching how a linear disassembler recovers
// from padding or embedded data.
func Function(data []byte, addr uint64) []Instruction {
	var out []Instruction

	offset := 0
	for offset < len(data) {
		inst, err := x86asm.Decode(data[offset:], 64)
		if err != nil || inst.Len == 0 {
			logger.Logf(logger.Allow, "decode", "bad instruction at %#x: %v", addr+uint64(offset), err)
			out = append(out, Instruction{
				Addr:     addr + uint64(offset),
				Bytes:    data[offset : offset+1],
				Mnemonic: "(bad)",
			})
			offset++
			continue
		}

		instCopy := inst
		mnemonic, operands := splitMnemonic(inst.String())
		out = append(out, Instruction{
			Addr:     addr + uint64(offset),
			Bytes:    data[offset : offset+inst.Len],
			Inst:     &instCopy,
			Mnemonic: mnemonic,
			Operands: operands,
		})
		offset += inst.Len
	}

	return out
}

// splitMnemonic separates the decoder's rendered instruction text
// ("MOV EAX, EBX") into its mnemonic and operand-list columns, the split
// the renderer's listing layout is built around.
func splitMnemonic(full string) (mnemonic, operands string) {
	for i, c := range full {
		if c == ' ' {
			return full[:i], full[i+1:]
		}
	}
	return full, ""
}
