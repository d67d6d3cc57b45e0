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

package buildtool

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/objscan/objscan/curated"
	"github.com/objscan/objscan/logger"
)

// goPackage mirrors the subset of `go list -json`'s package record this
// package cares about.
type goPackage struct {
	ImportPath string
	Name       string
}

// ListMainPackages enumerates main packages in the module rooted at
// manifestDir (the working directory `go list` runs in; pass "" for the
// current directory) via `go list -json -find ./...`.
func ListMainPackages(manifestDir string) ([]string, error) {
	cmd := exec.Command("go", "list", "-json", "-find", "./...")
	if manifestDir != "" {
		cmd.Dir = manifestDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, curated.Errorf(curated.BinaryReadError, stderr.String())
	}

	return parseMainPackages(&stdout)
}

// parseMainPackages decodes the stream of concatenated JSON package
// records `go list -json` writes (one object per package, no enclosing
// array) and returns the import paths of those named "main".
func parseMainPackages(r io.Reader) ([]string, error) {
	dec := json.NewDecoder(r)
	var mains []string
	for dec.More() {
		var pkg goPackage
		if err := dec.Decode(&pkg); err != nil {
			return nil, err
		}
		if pkg.Name == "main" {
			mains = append(mains, pkg.ImportPath)
		}
	}
	return mains, nil
}

// Resolve picks a buildable main package (warning if more than one exists)
// and builds it with `go build`, returning the path to the freshly built
// artifact. release selects Go's nearest equivalent of a stripped release
// profile, -ldflags="-s -w".
func Resolve(manifestDir string, release bool) (string, error) {
	mains, err := ListMainPackages(manifestDir)
	if err != nil {
		return "", err
	}
	if len(mains) == 0 {
		return "", curated.Errorf(curated.NoGoBinary)
	}
	if len(mains) > 1 {
		logger.Logf(logger.Allow, "buildtool", "multiple main packages found, using %s", mains[0])
	}

	target := mains[0]

	out, err := os.CreateTemp("", "objscan-*")
	if err != nil {
		return "", err
	}
	outPath := out.Name()
	out.Close()
	os.Remove(outPath) // go build creates it; we only needed a unique name

	args := []string{"build", "-o", outPath}
	if release {
		args = append(args, "-ldflags=-s -w")
	}
	args = append(args, target)

	cmd := exec.Command("go", args...)
	if manifestDir != "" {
		cmd.Dir = manifestDir
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", curated.Errorf(curated.BinaryReadError, stderr.String())
	}

	abs, err := filepath.Abs(outPath)
	if err != nil {
		return outPath, nil
	}
	return abs, nil
}
