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

import (
	"strings"
	"testing"
)

func TestDemangleNameItanium(t *testing.T) {
	got := demangleName("_ZN3std3vec3Vec4push17h0000000000000000E")
	if !strings.Contains(got, "std") || !strings.Contains(got, "push") {
		t.Errorf("demangleName() = %q, want it to mention std and push", got)
	}
}

func TestDemangleNameLeavesUnmangledNamesAlone(t *testing.T) {
	got := demangleName("main")
	if got != "main" {
		t.Errorf("demangleName(%q) = %q, want unchanged", "main", got)
	}
}

func TestDemangleNameFallsBackOnGarbage(t *testing.T) {
	got := demangleName("not_a_mangled_symbol_at_all")
	if got != "not_a_mangled_symbol_at_all" {
		t.Errorf("demangleName() on unparseable input should fall back to the original, got %q", got)
	}
}
