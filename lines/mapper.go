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

// Mapper resolves an instruction address to the source file and line that
// produced it. A failed lookup is not an error: callers see it as "no
// mapping available" and carry on without source interleaving.
type Mapper interface {
	Resolve(addr uint64) (path string, line int, ok bool)
}

// NoOp is the Mapper for binaries with no usable debug information
// (stripped PE with no PDB, Mach-O with no dSYM, and so on).
type NoOp struct{}

// Resolve always reports no mapping.
func (NoOp) Resolve(addr uint64) (string, int, bool) {
	return "", 0, false
}
