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

import "testing"

func TestShortName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain path",
			in:   "std::vec::Vec<T>::push",
			want: "std::vec::Vec<T>::push",
		},
		{
			name: "impl block collapses to the trait path",
			in:   "anyhow::context::<impl anyhow::Context<T,E> for core::result::Result<T,E>>::with_context",
			want: "anyhow::Context::with_context",
		},
		{
			name: "no impl fragment",
			in:   "core::option::Option<T>::unwrap",
			want: "core::option::Option<T>::unwrap",
		},
		{
			name: "single segment",
			in:   "main",
			want: "main",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := shortName(c.in); got != c.want {
				t.Errorf("shortName(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestSplitAtDepthZero(t *testing.T) {
	got := splitAtDepthZero("a::b<c::d>::e")
	want := []string{"a", "b<c::d>", "e"}
	if len(got) != len(want) {
		t.Fatalf("splitAtDepthZero() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIdentAfter(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"anyhow::Context<T,E> for core::result::Result<T,E>>", "anyhow::Context"},
		{"", ""},
		{"foo_bar123 rest", "foo_bar123"},
	}
	for _, c := range cases {
		if got := identAfter(c.in); got != c.want {
			t.Errorf("identAfter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
