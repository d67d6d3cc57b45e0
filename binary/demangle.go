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

import "github.com/ianlancetaylor/demangle"

// demangleName tries Rust demangling first, then C++ Itanium, and falls
// back to the original string if both fail. demangle.ToString handles both
// schemes (and several Itanium vendor extensions) through one entry point,
// so there's no need to sniff the mangling scheme from the name's prefix.
func demangleName(name string) string {
	if out, err := demangle.ToString(name, demangle.NoClones, demangle.NoParams); err == nil {
		return out
	}
	return name
}
