package ima

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// EntryKind classifies a measurement list line.
type EntryKind int

const (
	KindPlain EntryKind = iota
	KindNamespaceCreate
	KindNamespaceClose
	KindNamespaceMeasurement
)

func (k EntryKind) String() string {
	switch k {
	case KindNamespaceCreate:
		return "ns-create"
	case KindNamespaceClose:
		return "ns-close"
	case KindNamespaceMeasurement:
		return "ns-measurement"
	}
	return "plain"
}

// Markers are the template names that identify namespace entries.
type Markers struct {
	NamespaceEvent       string
	NamespaceMeasurement string
}

// DefaultMarkers returns the template names used by namespaced IMA kernels.
func DefaultMarkers() Markers {
	return Markers{
		NamespaceEvent:       DefaultNamespaceEventMarker,
		NamespaceMeasurement: DefaultNamespaceMeasurementMarker,
	}
}

// Entry is one parsed line of the ascii measurement list.
type Entry struct {
	Line           int
	Kind           EntryKind
	TemplateDigest []byte

	// namespace create/close
	ParentID string
	ChildID  string

	// namespace measurement
	HashTag     string
	FileDigest  []byte
	Path        string
	NamespaceID string
}

func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedLine, format, args...)
}

// ParseEntry tokenizes one non-empty line. The caller is responsible for
// skipping blank lines.
func ParseEntry(line string, lineNo int, m Markers) (*Entry, error) {
	fields := strings.Fields(line)
	if len(fields) < minFields {
		return nil, malformed("need at least %d fields, got %d", minFields, len(fields))
	}

	td, err := hex.DecodeString(fields[fieldTemplateDigest])
	if err != nil {
		return nil, malformed("template digest: %v", err)
	}

	e := &Entry{Line: lineNo, Kind: KindPlain, TemplateDigest: td}

	switch fields[fieldEventType] {
	case m.NamespaceEvent:
		if len(fields) < minNamespaceFields {
			return nil, malformed("namespace event needs %d fields, got %d", minNamespaceFields, len(fields))
		}
		flag, err := strconv.Atoi(fields[fieldPayload])
		if err != nil {
			return nil, malformed("namespace event flag %q", fields[fieldPayload])
		}
		switch NamespaceFlag(flag) {
		case NamespaceCreate:
			e.Kind = KindNamespaceCreate
		case NamespaceClose:
			e.Kind = KindNamespaceClose
		default:
			return nil, malformed("namespace event flag %q", fields[fieldPayload])
		}
		e.ParentID = fields[fieldPayload+1]
		e.ChildID = fields[fieldPayload+2]

	case m.NamespaceMeasurement:
		if len(fields) < minNamespaceFields {
			return nil, malformed("namespace measurement needs %d fields, got %d", minNamespaceFields, len(fields))
		}
		tag, digest, ok := strings.Cut(fields[fieldPayload], ":")
		if !ok || tag == "" {
			return nil, malformed("measurement %q is not alg:digest", fields[fieldPayload])
		}
		fd, err := hex.DecodeString(digest)
		if err != nil {
			return nil, malformed("measurement digest: %v", err)
		}
		e.Kind = KindNamespaceMeasurement
		e.HashTag = tag
		e.FileDigest = fd
		e.Path = fields[fieldPayload+1]
		e.NamespaceID = fields[len(fields)-1]
	}

	return e, nil
}
