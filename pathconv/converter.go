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

package pathconv

import (
	"path/filepath"
	"strings"
)

// Converter translates a path string recorded by a (possibly foreign)
// toolchain into a form the local filesystem can resolve.
type Converter interface {
	// IsRelative reports whether path_str, interpreted under this
	// Converter's source convention, is a relative path.
	IsRelative(pathStr string) bool

	// Convert rewrites path_str into the local path convention.
	Convert(pathStr string) string
}

type nativeConverter struct{}

// Native is a pass-through Converter: the embedded path already uses the
// host's own convention.
var Native Converter = nativeConverter{}

func (nativeConverter) IsRelative(pathStr string) bool {
	return !filepath.IsAbs(pathStr)
}

func (nativeConverter) Convert(pathStr string) string {
	return pathStr
}

type windowsToUnixConverter struct{}

// WindowsToUnix converts a Windows-style path (embedded by an MSVC/PDB
// toolchain) into a Unix-style one.
var WindowsToUnix Converter = windowsToUnixConverter{}

// IsRelative returns false only if path_str matches a Windows drive-letter
// prefix, "[A-Za-z]+:[/\\]...".
func (windowsToUnixConverter) IsRelative(pathStr string) bool {
	i := 0
	for i < len(pathStr) && isAlpha(pathStr[i]) {
		i++
	}
	if i == 0 || i >= len(pathStr) || pathStr[i] != ':' {
		return true
	}
	i++
	if i >= len(pathStr) {
		return true
	}
	return pathStr[i] != '/' && pathStr[i] != '\\'
}

func (windowsToUnixConverter) Convert(pathStr string) string {
	return strings.ReplaceAll(pathStr, `\`, "/")
}

type unixToWindowsConverter struct{}

// UnixToWindows converts a Unix-style path (embedded by a GCC/Clang/DWARF
// toolchain) into a Windows-style one.
var UnixToWindows Converter = unixToWindowsConverter{}

func (unixToWindowsConverter) IsRelative(pathStr string) bool {
	return !strings.HasPrefix(pathStr, "/")
}

func (unixToWindowsConverter) Convert(pathStr string) string {
	return strings.ReplaceAll(pathStr, "/", `\`)
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ForBinaryHost returns the Converter that translates a path embedded by a
// binary built for binaryIsWindows into the convention this process
// expects localIsWindows to be true when running on Windows.
func ForBinaryHost(binaryIsWindows, localIsWindows bool) Converter {
	switch {
	case binaryIsWindows && localIsWindows:
		return Native
	case binaryIsWindows && !localIsWindows:
		return WindowsToUnix
	case !binaryIsWindows && localIsWindows:
		return UnixToWindows
	default:
		return Native
	}
}
