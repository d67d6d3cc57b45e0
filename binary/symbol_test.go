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

import "testing"

func TestSymbolRanges(t *testing.T) {
	s := &Symbol{Addr: 0x1000, Offset: 0x400, Size: 0x20}

	lo, hi := s.AddrRange()
	if lo != 0x1000 || hi != 0x1020 {
		t.Errorf("AddrRange() = (%#x, %#x), want (%#x, %#x)", lo, hi, 0x1000, 0x1020)
	}

	lo, hi = s.OffsetRange()
	if lo != 0x400 || hi != 0x420 {
		t.Errorf("OffsetRange() = (%#x, %#x), want (%#x, %#x)", lo, hi, 0x400, 0x420)
	}
}

func TestSymbolShortNameCached(t *testing.T) {
	s := &Symbol{
		DemangledName: "anyhow::context::<impl anyhow::Context<T,E> for core::result::Result<T,E>>::with_context",
	}

	want := "anyhow::Context::with_context"
	if got := s.ShortName(); got != want {
		t.Errorf("ShortName() = %q, want %q", got, want)
	}

	// mutate the cached field directly to prove the second call reuses it
	// rather than recomputing from DemangledName.
	s.shortDemangledName = "stale"
	if got := s.ShortName(); got != "stale" {
		t.Errorf("ShortName() should return the cached value, got %q", got)
	}
}
