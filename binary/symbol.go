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

// Symbol is one function extracted from a container's symbol table.
type Symbol struct {
	// OriginalName is the name exactly as stored in the container.
	OriginalName string

	// DemangledName is the demangled form of OriginalName. If demangling
	// fails, or the name wasn't mangled in the first place, this equals
	// OriginalName.
	DemangledName string

	// shortDemangledName is lazily computed by ShortName(); empty until
	// then.
	shortDemangledName string
	shortComputed      bool

	// Addr is the symbol's virtual address at run-time. Zero means the
	// loader could not establish a usable address for this symbol (see
	// the per-container size-inference notes).
	Addr uint64

	// Offset is the symbol's byte position within the file.
	Offset uint64

	// Size is the symbol's size in bytes. May be zero until fixed by a
	// loader's size-inference pass.
	Size uint64
}

// OffsetRange returns the half-open byte range [Offset, Offset+Size) this
// symbol occupies in the file.
func (s *Symbol) OffsetRange() (uint64, uint64) {
	return s.Offset, s.Offset + s.Size
}

// AddrRange returns the half-open address range [Addr, Addr+Size).
func (s *Symbol) AddrRange() (uint64, uint64) {
	return s.Addr, s.Addr + s.Size
}

// ShortName returns a further-condensed form of DemangledName, collapsing
// impl scope qualifiers down to the path written right after "impl ".
// The result is computed once and cached on the Symbol.
func (s *Symbol) ShortName() string {
	if !s.shortComputed {
		s.shortDemangledName = shortName(s.DemangledName)
		s.shortComputed = true
	}
	return s.shortDemangledName
}
