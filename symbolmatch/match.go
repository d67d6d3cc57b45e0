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
	"strings"

	"github.com/objscan/objscan/binary"
)

// Tokenize extracts the maximal [A-Za-z_][A-Za-z0-9_]* spans from needle,
// in order.
func Tokenize(needle string) []string {
	var tokens []string
	i := 0
	for i < len(needle) {
		if !isIdentStart(needle[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(needle) && isIdentCont(needle[j]) {
			j++
		}
		tokens = append(tokens, needle[i:j])
		i = j
	}
	return tokens
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// Matches reports whether every token in tokens can be located in name, in
// order, ASCII case-insensitively: a token's characters must appear in name
// as an ordered subsequence, each search starting after the previous
// match's end.
func Matches(tokens []string, name string) bool {
	lower := strings.ToLower(name)
	pos := 0
	for _, tok := range tokens {
		ltok := strings.ToLower(tok)
		for k := 0; k < len(ltok); k++ {
			idx := strings.IndexByte(lower[pos:], ltok[k])
			if idx < 0 {
				return false
			}
			pos += idx + 1
		}
	}
	return true
}

// List returns every symbol whose demangled name matches needle, in the
// order they appear in symbols.
func List(needle string, symbols []*binary.Symbol) []*binary.Symbol {
	tokens := Tokenize(needle)
	var out []*binary.Symbol
	for _, s := range symbols {
		if Matches(tokens, s.DemangledName) {
			out = append(out, s)
		}
	}
	return out
}

// First returns the first symbol whose demangled name matches needle.
func First(needle string, symbols []*binary.Symbol) (*binary.Symbol, bool) {
	tokens := Tokenize(needle)
	for _, s := range symbols {
		if Matches(tokens, s.DemangledName) {
			return s, true
		}
	}
	return nil, false
}
