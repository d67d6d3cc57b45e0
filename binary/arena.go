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

// Arena is an append-only string store. The container loaders intern each
// symbol's original and demangled names here rather than allocating them
// per-symbol, so that a Symbol's name fields remain valid references for as
// long as the owning Binary lives. No PDB-derived names are interned: the
// PE loader takes its symbols from the COFF symbol table only.
type Arena struct {
	strs []string
}

// Intern appends s to the arena and returns it unchanged. Centralising
// string ownership here (rather than scattering heap allocations across
// every loader) keeps Binary's lifetime story simple: nothing a Symbol
// points at can be freed out from under it.
func (a *Arena) Intern(s string) string {
	a.strs = append(a.strs, s)
	return a.strs[len(a.strs)-1]
}
