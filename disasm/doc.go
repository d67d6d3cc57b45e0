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

// Package disasm wires the whole pipeline together: load a binary, match
// a symbol, decode its instructions, analyze and lay out inner jumps,
// rasterize the arrows, and render the final listing. The CLI commands
// call into it for both operations, after resolving the binary path.
package disasm
