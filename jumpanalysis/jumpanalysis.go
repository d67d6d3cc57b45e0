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
	"sort"

	"golang.org/x/arch/x86/x86asm"

	"github.com/objscan/objscan/binary"
	"github.com/objscan/objscan/decode"
)

// InnerJump is one intra-function branch: the instruction at SourceIndex
// jumps to the instruction at TargetIndex. DisplayOffset (the lane) is
// filled in later, by the lane-layout pass.
type InnerJump struct {
	SourceIndex   int
	TargetIndex   int
	DisplayOffset int
}

// InnerJumpTable is the ordered collection of InnerJumps for one
// function, sorted by SourceIndex once lane layout has run.
type InnerJumpTable struct {
	Jumps            []InnerJump
	MaxDisplayOffset int
}

// OperandPatches is a sparse instruction-index -> referenced-symbol map.
// An unset entry means the renderer should fall back to the decoder's
// literal operand text.
type OperandPatches map[int]*binary.Symbol

// jump and call mnemonics that carry a single branch-target operand,
// mirroring the opcode-byte sets in the spec (0xEB/E9/FF/EA/E3/0x70-7F,
// two-byte 0x0F 0x80-8F for jumps; 0xE8/FF/9A for calls). x86asm already
// disambiguates the FF opcode group's /2-/5 encodings (near and far CALL
// and JMP) and the far EA/9A forms into distinct Op values, so switching
// on Op is equivalent to the spec's opcode-byte match without re-deriving
// ModRM by hand.
var jumpOps = map[x86asm.Op]bool{
	x86asm.JMP: true, x86asm.JA: true, x86asm.JAE: true, x86asm.JB: true, x86asm.JBE: true,
	x86asm.JE: true, x86asm.JG: true, x86asm.JGE: true, x86asm.JL: true, x86asm.JLE: true,
	x86asm.JNE: true, x86asm.JNO: true, x86asm.JNP: true, x86asm.JNS: true, x86asm.JO: true,
	x86asm.JP: true, x86asm.JCXZ: true, x86asm.JECXZ: true, x86asm.JRCXZ: true,
	x86asm.LJMP: true,
}

var callOps = map[x86asm.Op]bool{
	x86asm.CALL: true, x86asm.LCALL: true,
}

// Analyze walks insts (the decoded instruction sequence for one function)
// and fills an InnerJumpTable (lanes not yet assigned) and OperandPatches
// against the binary's global symbol table.
func Analyze(insts []decode.Instruction, symbols []*binary.Symbol) (InnerJumpTable, OperandPatches) {
	table := InnerJumpTable{}
	patches := OperandPatches{}

	addrIndex := make(map[uint64]int, len(insts))
	for i, in := range insts {
		addrIndex[in.Addr] = i
	}

	for idx, in := range insts {
		if in.Inst == nil {
			continue
		}

		target, ok := branchTarget(in)
		if !ok {
			continue
		}

		if targetIdx, ok := addrIndex[target]; ok {
			if targetIdx == idx {
				// a jump whose target is itself (e.g. a spin-wait "jmp $")
				// draws no useful arrow; skip it before lane layout sees it.
				continue
			}
			table.Jumps = append(table.Jumps, InnerJump{SourceIndex: idx, TargetIndex: targetIdx})
			continue
		}

		if sym := findSymbolAt(symbols, target); sym != nil {
			patches[idx] = sym
		}
	}

	return table, patches
}

// branchTarget extracts the single-operand branch target of a jump or
// call instruction, per the operand-value rule: an immediate is the
// address directly; a relative displacement, and a RIP/EIP-relative memory
// operand with no index, resolve against the address immediately following
// the instruction.
func branchTarget(in decode.Instruction) (uint64, bool) {
	inst := in.Inst

	isJump := jumpOps[inst.Op]
	isCall := callOps[inst.Op]
	if !isJump && !isCall {
		return 0, false
	}

	args := operandArgs(inst)
	if len(args) != 1 {
		return 0, false
	}

	nextIP := in.Addr + uint64(inst.Len)

	switch a := args[0].(type) {
	case x86asm.Rel:
		return nextIP + uint64(int64(a)), true
	case x86asm.Imm:
		return uint64(a), true
	case x86asm.Mem:
		if a.Segment != 0 {
			return 0, false
		}
		if a.Base != x86asm.RIP && a.Base != x86asm.EIP {
			return 0, false
		}
		if a.Index != 0 {
			return 0, false
		}
		return nextIP + uint64(a.Disp), true
	default:
		return 0, false
	}
}

// operandArgs returns inst's non-nil operands, in order.
func operandArgs(inst *x86asm.Inst) []x86asm.Arg {
	var args []x86asm.Arg
	for _, a := range inst.Args {
		if a == nil {
			break
		}
		args = append(args, a)
	}
	return args
}

func findSymbolAt(symbols []*binary.Symbol, addr uint64) *binary.Symbol {
	for _, s := range symbols {
		if s.Addr == addr {
			return s
		}
	}
	return nil
}

// SortBySource orders an InnerJumpTable's jumps by SourceIndex, the
// precondition the lane-layout pass's backward scan relies on.
func (t *InnerJumpTable) SortBySource() {
	sort.Slice(t.Jumps, func(i, j int) bool { return t.Jumps[i].SourceIndex < t.Jumps[j].SourceIndex })
}
