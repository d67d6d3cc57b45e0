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

package symbolmatch

import (
	"reflect"
	"testing"

	"github.com/objscan/objscan/binary"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("foo::bar_1 (baz)")
	want := []string{"foo", "bar_1", "baz"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestMatchesSubsequenceCaseInsensitive(t *testing.T) {
	tokens := Tokenize("pw")
	if !Matches(tokens, "pow") {
		t.Error(`"pw" should match "pow" (subsequence)`)
	}
	if Matches(tokens, "main") {
		t.Error(`"pw" should not match "main"`)
	}
	if !Matches(tokens, "Pow_helper") {
		t.Error(`"pw" should match "Pow_helper" case-insensitively`)
	}
}

func TestMatchesRequiresOrder(t *testing.T) {
	tokens := Tokenize("foo bar")
	if !Matches(tokens, "foo_then_bar") {
		t.Error("tokens in order should match")
	}
	if Matches(tokens, "bar_then_foo") {
		t.Error("tokens out of order should not match")
	}
}

func TestMatchesConsumesBeforeNextSearch(t *testing.T) {
	// second "ab" token must be found strictly after the first match ends.
	tokens := Tokenize("ab ab")
	if Matches(tokens, "ab") {
		t.Error(`a single "ab" should not satisfy two "ab" tokens`)
	}
	if !Matches(tokens, "abab") {
		t.Error(`"abab" should satisfy two "ab" tokens`)
	}
}

func TestListAndFirst(t *testing.T) {
	symbols := []*binary.Symbol{
		{OriginalName: "pow", DemangledName: "pow"},
		{OriginalName: "main", DemangledName: "main"},
		{OriginalName: "Pow_helper", DemangledName: "Pow_helper"},
	}

	list := List("pw", symbols)
	if len(list) != 2 || list[0] != symbols[0] || list[1] != symbols[2] {
		t.Errorf("List(\"pw\") = %+v, want [pow, Pow_helper]", list)
	}

	first, ok := First("pw", symbols)
	if !ok || first != symbols[0] {
		t.Errorf("First(\"pw\") = %+v, %v, want pow", first, ok)
	}

	if _, ok := First("zzz", symbols); ok {
		t.Error("First(\"zzz\") should report no match")
	}
}
