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

// Arch identifies the instruction set a Binary was compiled for.
type Arch int

const (
	ArchUnknown Arch = iota
	ArchSPARC
	ArchX86
	ArchMIPS
	ArchPowerPC
	ArchPowerPC64
	ArchARM
	ArchAMD64
	ArchAArch64
	ArchRiscV
	ArchM68K
)

func (a Arch) String() string {
	switch a {
	case ArchSPARC:
		return "sparc"
	case ArchX86:
		return "x86"
	case ArchMIPS:
		return "mips"
	case ArchPowerPC:
		return "powerpc"
	case ArchPowerPC64:
		return "powerpc64"
	case ArchARM:
		return "arm"
	case ArchAMD64:
		return "amd64"
	case ArchAArch64:
		return "arm64"
	case ArchRiscV:
		return "riscv"
	case ArchM68K:
		return "m68k"
	default:
		return "unknown"
	}
}

// Bits is the natural word width of a Binary.
type Bits int

const (
	BitsUnknown Bits = 0
	Bits32      Bits = 32
	Bits64      Bits = 64
)

// Endian is the byte order a Binary's fields were encoded with.
type Endian int

const (
	EndianUnknown Endian = iota
	LittleEndian
	BigEndian
)
