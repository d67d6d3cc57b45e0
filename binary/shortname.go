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

import "strings"

// shortName collapses a demangled name's impl scope qualifiers down to the
// path written right after "impl " (the trait's path for a trait impl, the
// type's path for an inherent impl). It splits the name at "::" at
// bracket depth 0 (tracking "<"/">" nesting), and whenever a fragment
// contains "impl " it discards everything accumulated so far in favour of
// the identifier immediately following "impl ".
//
// anyhow::context::<impl anyhow::Context<T,E> for core::result::Result<T,E>>::with_context
// becomes anyhow::Context::with_context.
func shortName(name string) string {
	fragments := splitAtDepthZero(name)

	var kept []string
	for _, frag := range fragments {
		if idx := strings.Index(frag, "impl "); idx >= 0 {
			ident := identAfter(frag[idx+len("impl "):])
			if ident != "" {
				kept = []string{ident}
				continue
			}
		}
		kept = append(kept, frag)
	}

	return strings.Join(kept, "::")
}

// splitAtDepthZero splits s on "::" but only when bracket depth (as
// tracked by "<"/">") is zero, so that "::" inside a generic argument list
// doesn't fragment the name.
func splitAtDepthZero(s string) []string {
	var out []string
	depth := 0
	start := 0

	i := 0
	for i < len(s) {
		switch s[i] {
		case '<':
			depth++
			i++
		case '>':
			if depth > 0 {
				depth--
			}
			i++
		case ':':
			if depth == 0 && i+1 < len(s) && s[i+1] == ':' {
				out = append(out, s[start:i])
				i += 2
				start = i
				continue
			}
			i++
		default:
			i++
		}
	}
	out = append(out, s[start:])
	return out
}

// identAfter returns the maximal leading run of identifier characters
// ([A-Za-z0-9_:]) in s.
func identAfter(s string) string {
	end := 0
	for end < len(s) && isIdentRune(s[end]) {
		end++
	}
	return s[:end]
}

func isIdentRune(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_' || b == ':':
		return true
	default:
		return false
	}
}
