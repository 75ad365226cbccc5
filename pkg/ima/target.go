package ima

import (
	"encoding/hex"
	"strings"

	tpm2 "github.com/canonical/go-tpm2"
	"github.com/pkg/errors"
)

func isLabel(f string) bool {
	return strings.HasSuffix(f, ":") || strings.HasPrefix(f, "[") || strings.EqualFold(f, "pcr10")
}

// ParseTarget decodes a reference PCR value for h. Besides plain hex it
// accepts what PCR dumping tools print, e.g.
//
//	0x1C4B3F5A...
//	10: 0x1C4B3F5A...
//	[PCR10]  1C 4B 3F 5A ...
//	1c:4b:3f:5a:...
func ParseTarget(s string, h *HashEngine) (tpm2.Digest, error) {
	fields := strings.Fields(s)
	for len(fields) > 1 && isLabel(fields[0]) {
		fields = fields[1:]
	}
	v := strings.Join(fields, "")
	v = strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
	v = strings.ReplaceAll(v, ":", "")

	if v == "" {
		return nil, errors.Wrap(ErrInvalidTarget, "empty value")
	}
	d, err := hex.DecodeString(v)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidTarget, "%q: %v", s, err)
	}
	if len(d) != h.Size() {
		return nil, errors.Wrapf(ErrInvalidTarget, "%d bytes, %s digests are %d", len(d), h.Name(), h.Size())
	}
	return d, nil
}
