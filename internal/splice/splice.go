// Package splice replaces the text between two marker strings in a document,
// leaving everything outside the markers byte-for-byte intact.
//
// The work is split into a pure locate step, a pure splice step and an
// isolated write step so each can be tested on its own.
package splice

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDocumentNotFound indicates the target document does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrStartMarkerMissing indicates the start marker does not occur in the document.
	ErrStartMarkerMissing = errors.New("start marker not found")

	// ErrEndMarkerMissing indicates the end marker does not occur in the document.
	ErrEndMarkerMissing = errors.New("end marker not found")

	// ErrMarkersOutOfOrder indicates the first end marker begins before the first start marker ends.
	ErrMarkersOutOfOrder = errors.New("end marker precedes start marker")
)

// Markers delimit a replaceable region.
type Markers struct {
	Start string
	End   string
}

// Region is the half-open byte range [Start, End) strictly between the
// markers: Start is just past the start marker, End is where the end marker begins.
type Region struct {
	Start int
	End   int
}

// Locate finds the region between the first start marker and the first end marker.
func Locate(content string, m Markers) (Region, error) {
	startIdx := strings.Index(content, m.Start)
	endIdx := strings.Index(content, m.End)

	switch {
	case startIdx < 0 && endIdx < 0:
		return Region{}, errors.Join(ErrStartMarkerMissing, ErrEndMarkerMissing)
	case startIdx < 0:
		return Region{}, ErrStartMarkerMissing
	case endIdx < 0:
		return Region{}, ErrEndMarkerMissing
	}

	r := Region{Start: startIdx + len(m.Start), End: endIdx}
	if r.End < r.Start {
		return Region{}, fmt.Errorf("%w: start at %d, end at %d", ErrMarkersOutOfOrder, startIdx, endIdx)
	}
	return r, nil
}

// Splice returns content with region r replaced by a newline, inner, a
// newline and indent. indent re-aligns the end marker.
func Splice(content string, r Region, inner, indent string) string {
	var b strings.Builder
	b.Grow(r.Start + len(inner) + len(indent) + 2 + len(content) - r.End)
	b.WriteString(content[:r.Start])
	b.WriteByte('\n')
	b.WriteString(inner)
	b.WriteByte('\n')
	b.WriteString(indent)
	b.WriteString(content[r.End:])
	return b.String()
}

// Content locates m in content and splices inner into it.
func Content(content, inner string, m Markers, indent string) (string, error) {
	r, err := Locate(content, m)
	if err != nil {
		return "", err
	}
	return Splice(content, r, inner, indent), nil
}
