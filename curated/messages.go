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

package curated

// error patterns used throughout objscan. grouped roughly by the component
// that raises them.
const (
	// symbol matching
	NoSymbolMatch = "no symbol matches %q"

	// container loading
	UnsupportedBinaryFormat   = "unsupported binary format (%s)"
	UnsupportedBinaryFormatOp = "%s binary does not support %s"
	BinaryReadError           = "cannot read binary: %v"

	// build-tool integration
	NoGoBinary = "no buildable main package found"

	// instruction decoding
	DecodeError = "decode error: %v"
)
