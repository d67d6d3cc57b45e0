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

package filecache

import "os"

// lineRange is a line's byte offsets into its file's content, excluding
// the trailing newline.
type lineRange struct {
	start, end int
}

type file struct {
	content []byte
	lines   []lineRange
}

// Cache maps source file paths to their contents and a line-offset index,
// reading each path from disk at most once.
type Cache struct {
	files map[string]*file
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{files: make(map[string]*file)}
}

// Line returns line number lineNum (counting from 1) of path, with
// trailing whitespace removed. ok is false if the file can't be read or
// the line number is out of range.
func (c *Cache) Line(path string, lineNum int) (s string, ok bool) {
	f, err := c.load(path)
	if err != nil {
		return "", false
	}

	idx := lineNum - 1
	if idx < 0 || idx >= len(f.lines) {
		return "", false
	}

	r := f.lines[idx]
	return trimTrailingSpace(string(f.content[r.start:r.end])), true
}

func (c *Cache) load(path string) (*file, error) {
	if f, ok := c.files[path]; ok {
		return f, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f := &file{content: b}
	start := 0
	for i, c := range b {
		if c == '\n' {
			f.lines = append(f.lines, lineRange{start: start, end: i})
			start = i + 1
		}
	}
	if start <= len(b) {
		f.lines = append(f.lines, lineRange{start: start, end: len(b)})
	}

	c.files[path] = f
	return f, nil
}

func trimTrailingSpace(s string) string {
	end := len(s)
	for end > 0 {
		switch s[end-1] {
		case ' ', '\t', '\r':
			end--
			continue
		}
		break
	}
	return s[:end]
}
