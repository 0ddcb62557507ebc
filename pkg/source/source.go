// Package source manages the ordered list of video sources and opens them.
// Index 0 is always the live camera; the rest are video files from a manifest.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// CameraName is the display name of the camera entry.
const CameraName = "webcam"

// ErrManifest is returned when the manifest cannot be read.
var ErrManifest = errors.New("source: manifest unreadable")

// Kind tells cameras and files apart.
type Kind int

const (
	Camera Kind = iota
	File
)

func (k Kind) String() string {
	if k == Camera {
		return "camera"
	}
	return "file"
}

// Source is one entry of the list.
type Source struct {
	Index int
	Name  string // CameraName or the file path
	Kind  Kind
}

// List is the ordered set of sources. Entry 0 is the camera.
type List struct {
	files []string
}

// NewList builds a list with the camera followed by files.
func NewList(files ...string) List {
	return List{files: append([]string(nil), files...)}
}

// Len returns the number of sources including the camera.
func (l List) Len() int {
	return len(l.files) + 1
}

// At returns the source at index i. It panics if i is out of range.
func (l List) At(i int) Source {
	if i < 0 || i >= l.Len() {
		panic(fmt.Sprintf("source: index %d out of range [0, %d)", i, l.Len()))
	}
	if i == 0 {
		return Source{Index: 0, Name: CameraName, Kind: Camera}
	}
	return Source{Index: i, Name: l.files[i-1], Kind: File}
}

// Files returns the manifest entries in order.
func (l List) Files() []string {
	return append([]string(nil), l.files...)
}

// LoadManifest reads one file path per line from path.
// Lines holding only whitespace are skipped; every other line is taken as is.
func LoadManifest(path string) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return List{}, fmt.Errorf("%w: %s: %v", ErrManifest, path, err)
	}
	defer f.Close()

	l, err := ParseManifest(f)
	if err != nil {
		return List{}, fmt.Errorf("%w: %s: %v", ErrManifest, path, err)
	}
	return l, nil
}

// ParseManifest reads manifest lines from r.
func ParseManifest(r io.Reader) (List, error) {
	var files []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		files = append(files, line)
	}
	if err := sc.Err(); err != nil {
		return List{}, err
	}

	return NewList(files...), nil
}
