package ima

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"strings"

	"github.com/apex/log"
	tpm2 "github.com/canonical/go-tpm2"
	"github.com/pkg/errors"
)

const maxLineSize = 1 << 20

// RunningState is everything a replay accumulates: the recomputed PCR
// value and the namespace hierarchy built from the log.
type RunningState struct {
	Value tpm2.Digest
	Tree  *NamespaceTree
}

// Engine replays a measurement list entry by entry. An Engine is used for
// a single log and is not safe for concurrent use.
type Engine struct {
	hash    *HashEngine
	markers Markers
	target  tpm2.Digest
	state   RunningState
	watch   *namespaceWatch
	log     log.Interface

	lines     int
	matched   bool
	matchLine int
}

// NewEngine returns an engine starting from the all-zero PCR value. A nil
// target disables matching, the whole log is replayed.
func NewEngine(h *HashEngine, m Markers, target tpm2.Digest) *Engine {
	return &Engine{
		hash:    h,
		markers: m,
		target:  target,
		state: RunningState{
			Value: h.StartValue(),
			Tree:  NewNamespaceTree(),
		},
		log: log.Log,
	}
}

// SetLogger replaces the logger used for per-entry tracing.
func (e *Engine) SetLogger(l log.Interface) { e.log = l }

// Watch also accumulates the virtual PCR of namespace id.
func (e *Engine) Watch(id string) {
	e.watch = newNamespaceWatch(id, e.hash)
}

func (e *Engine) Value() tpm2.Digest   { return e.state.Value }
func (e *Engine) Tree() *NamespaceTree { return e.state.Tree }
func (e *Engine) Lines() int           { return e.lines }

// Matched reports whether the target was reached, and after which line.
func (e *Engine) Matched() (bool, int) { return e.matched, e.matchLine }

// namespaceValue is the digest a namespaced measurement is extended with.
func (e *Engine) namespaceValue(en *Entry) tpm2.Digest {
	return e.hash.Sum(
		[]byte(en.HashTag), []byte{0}, en.FileDigest,
		[]byte(en.Path), []byte{0},
		[]byte(en.NamespaceID))
}

// Step applies one entry. On error the running value is left as it was
// before the entry.
func (e *Engine) Step(en *Entry) (bool, error) {
	tree := e.state.Tree
	value := e.state.Value

	switch en.Kind {
	case KindNamespaceCreate:
		tree.EnsureRoot(en.ParentID)
		if _, err := tree.InsertChild(en.ParentID, en.ChildID); err != nil {
			return false, err
		}
	case KindNamespaceClose:
		if err := tree.Close(en.ChildID); err != nil {
			return false, err
		}
	case KindNamespaceMeasurement:
		tree.EnsureRoot(en.NamespaceID)
		count, err := tree.Depth(en.NamespaceID)
		if err != nil {
			return false, errors.Wrap(err, "measurement")
		}
		nv := e.namespaceValue(en)
		for i := 0; i < count; i++ {
			value = e.hash.Extend(value, nv)
		}
		if e.watch != nil {
			e.watch.observe(en)
		}
		e.log.WithFields(log.Fields{
			"line":      en.Line,
			"namespace": en.NamespaceID,
			"count":     count,
		}).Debug("namespaced measurement")
	}

	value = e.hash.Extend(value, e.hash.substitute(en.TemplateDigest))
	e.state.Value = value
	e.lines++

	e.log.WithFields(log.Fields{
		"line":  en.Line,
		"kind":  en.Kind,
		"value": hex.EncodeToString(value),
	}).Debug("extended")

	return e.check(en.Line), nil
}

func (e *Engine) check(line int) bool {
	if e.target == nil || !bytes.Equal(e.state.Value, e.target) {
		return false
	}
	e.matched = true
	e.matchLine = line
	return true
}

// Run replays r until the target is matched or input ends. No line after
// the matching one is parsed.
func (e *Engine) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		en, err := ParseEntry(text, lineNo, e.markers)
		if err != nil {
			return &LineError{Line: lineNo, Text: text, Err: err}
		}
		done, err := e.Step(en)
		if err != nil {
			return &LineError{Line: lineNo, Text: text, Err: err}
		}
		if done {
			e.log.Infof("PCR %d matched after line %d", PCRIndex, lineNo)
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "reading measurement list")
	}

	// an empty list leaves the PCR at its reset value
	if e.lines == 0 {
		e.check(0)
	}
	return nil
}
