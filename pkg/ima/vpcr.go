package ima

import (
	"encoding/hex"

	tpm2 "github.com/canonical/go-tpm2"
)

// namespaceWatch tracks the virtual PCR of a single namespace: the chain of
// file digests measured inside it, starting from the reset value.
type namespaceWatch struct {
	id    string
	hash  *HashEngine
	value tpm2.Digest
	count int
}

func newNamespaceWatch(id string, h *HashEngine) *namespaceWatch {
	return &namespaceWatch{id: id, hash: h, value: h.StartValue()}
}

func (w *namespaceWatch) observe(en *Entry) {
	if en.NamespaceID != w.id {
		return
	}
	w.value = w.hash.Extend(w.value, en.FileDigest)
	w.count++
}

// NamespaceReport is the virtual PCR of one namespace.
type NamespaceReport struct {
	ID           string `json:"id"`
	Value        string `json:"value"`
	Measurements int    `json:"measurements"`
}

func (w *namespaceWatch) report() *NamespaceReport {
	return &NamespaceReport{
		ID:           w.id,
		Value:        hex.EncodeToString(w.value),
		Measurements: w.count,
	}
}
