package ima

import "fmt"

// PCRIndex is the register the IMA measurement list is extended into.
const PCRIndex = 10

// DefaultLogPath is where the kernel exposes the ascii measurement list.
const DefaultLogPath = "/sys/kernel/security/ima/ascii_runtime_measurements"

// DefaultAlgorithm is the bank the ascii template digests are computed with.
const DefaultAlgorithm = "sha1"

const (
	// Template names that mark namespace lifecycle and namespaced
	// measurement entries.
	DefaultNamespaceEventMarker       = "ima-ns-event"
	DefaultNamespaceMeasurementMarker = "ima-dig-imaid"
)

// Field positions within a tokenized log line.
const (
	fieldPCR = iota
	fieldTemplateDigest
	fieldEventType
	fieldPayload

	minFields = 5
	// namespace lines carry one more field than a plain ima-ng line
	minNamespaceFields = 6
)

// NamespaceFlag is the lifecycle flag carried by a namespace event.
type NamespaceFlag int

const (
	NamespaceCreate NamespaceFlag = 0
	NamespaceClose  NamespaceFlag = 1
)

func (f NamespaceFlag) String() string {
	switch f {
	case NamespaceCreate:
		return "create"
	case NamespaceClose:
		return "close"
	}
	return fmt.Sprintf("flag(%d)", int(f))
}
