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

import "os"

// Data owns the raw bytes of an executable and, once discovered, of an
// external debug-information file (a standalone DWARF blob pulled out of a
// .dSYM bundle, say). It is constructed once by reading the file from disk
// and is never mutated again except for the single debug-info attachment;
// every downstream view (Binary, a line mapper) borrows into these slices
// rather than copying them.
type Data struct {
	Path string
	Main []byte

	// DebugPath/Debug hold an external debug-info file's bytes, if one was
	// discovered during loading. Attachment happens at most once, before
	// any line-mapping call is made; nothing may mutate Data afterwards.
	DebugPath string
	Debug     []byte
}

// LoadData reads path into a new Data. It does not attach any external
// debug information; that happens as part of container loading, before
// any Binary is handed to a caller.
func LoadData(path string) (*Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Data{Path: path, Main: b}, nil
}

// attachDebug records the bytes of an external debug-info file. Must be
// called at most once, and only while the Binary built from this Data is
// still being constructed.
func (d *Data) attachDebug(path string, b []byte) {
	d.DebugPath = path
	d.Debug = b
}
