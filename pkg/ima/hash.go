package ima

import (
	"bytes"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"strings"

	tpm2 "github.com/canonical/go-tpm2"
	"github.com/pkg/errors"
)

var supportedAlgs = map[string]tpm2.HashAlgorithmId{
	"sha1":   tpm2.HashAlgorithmSHA1,
	"sha256": tpm2.HashAlgorithmSHA256,
	"sha384": tpm2.HashAlgorithmSHA384,
	"sha512": tpm2.HashAlgorithmSHA512,
}

// HashEngine performs PCR style extends with one digest algorithm.
type HashEngine struct {
	name string
	alg  tpm2.HashAlgorithmId
}

// NewHashEngine returns the engine for the named algorithm ("sha1",
// "sha256", "sha384" or "sha512", case insensitive).
func NewHashEngine(name string) (*HashEngine, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	alg, ok := supportedAlgs[n]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "%q", name)
	}
	return &HashEngine{name: n, alg: alg}, nil
}

func (h *HashEngine) Name() string { return h.name }

func (h *HashEngine) Algorithm() tpm2.HashAlgorithmId { return h.alg }

// Size is the digest length in bytes.
func (h *HashEngine) Size() int { return h.alg.Size() }

// Sum hashes the concatenation of data.
func (h *HashEngine) Sum(data ...[]byte) tpm2.Digest {
	d := h.alg.NewHash()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Extend returns H(running || material).
func (h *HashEngine) Extend(running, material []byte) tpm2.Digest {
	return h.Sum(running, material)
}

// StartValue is the all-zero digest a PCR holds after reset.
func (h *HashEngine) StartValue() tpm2.Digest {
	return make(tpm2.Digest, h.Size())
}

// AllOnesValue is the all-0xff digest.
func (h *HashEngine) AllOnesValue() tpm2.Digest {
	return tpm2.Digest(bytes.Repeat([]byte{0xff}, h.Size()))
}

// substitute applies the invalidated-entry convention: a zero filled
// template digest is extended as all ones.
func (h *HashEngine) substitute(d []byte) []byte {
	if len(d) == h.Size() && bytes.Equal(d, h.StartValue()) {
		return h.AllOnesValue()
	}
	return d
}
