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

func TestArenaInternReturnsEqualStrings(t *testing.T) {
	var a Arena
	s1 := a.Intern("hello")
	s2 := a.Intern("world")
	if s1 != "hello" || s2 != "world" {
		t.Errorf("Intern returned %q, %q, want %q, %q", s1, s2, "hello", "world")
	}
}

func TestArenaInternSurvivesGrowth(t *testing.T) {
	var a Arena
	var kept []string
	for i := 0; i < 256; i++ {
		kept = append(kept, a.Intern(string(rune('a'+i%26))+string(rune(i)))) // unique-ish strings
	}
	for i, s := range kept {
		want := string(rune('a'+i%26)) + string(rune(i))
		if s != want {
			t.Errorf("entry %d changed after growth: got %q, want %q", i, s, want)
		}
	}
}
