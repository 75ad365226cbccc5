package ima

import (
	"context"
	"encoding/hex"
	"io"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Config selects how a measurement list is verified.
type Config struct {
	// Algorithm of the PCR bank, DefaultAlgorithm when empty.
	Algorithm string
	// Target is the reference PCR10 value, see ParseTarget.
	Target  string
	Markers Markers
	// WatchNamespace, when set, also reports that namespace's virtual PCR.
	WatchNamespace string
}

// Result of one verification run. Matched false with a nil error from
// Verify means the log was processed and did not produce the target.
type Result struct {
	RunID          string           `json:"run_id"`
	Algorithm      string           `json:"algorithm"`
	Matched        bool             `json:"matched"`
	MatchLine      int              `json:"match_line,omitempty"`
	LinesProcessed int              `json:"lines_processed"`
	Computed       string           `json:"computed"`
	Namespace      *NamespaceReport `json:"namespace,omitempty"`
}

func (c Config) markers() Markers {
	if c.Markers == (Markers{}) {
		return DefaultMarkers()
	}
	return c.Markers
}

// NewEngineFromConfig validates the algorithm and target before any of the
// log is read.
func NewEngineFromConfig(cfg Config) (*Engine, error) {
	alg := cfg.Algorithm
	if alg == "" {
		alg = DefaultAlgorithm
	}
	h, err := NewHashEngine(alg)
	if err != nil {
		return nil, err
	}
	target, err := ParseTarget(cfg.Target, h)
	if err != nil {
		return nil, err
	}
	e := NewEngine(h, cfg.markers(), target)
	if cfg.WatchNamespace != "" {
		e.Watch(cfg.WatchNamespace)
	}
	return e, nil
}

// Verify replays r and compares the recomputed PCR10 against cfg.Target.
func Verify(ctx context.Context, r io.Reader, cfg Config) (*Result, error) {
	e, err := NewEngineFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := log.WithFields(log.Fields{"run": runID, "alg": e.hash.Name()})
	e.SetLogger(logger)

	if err := e.Run(ctx, r); err != nil {
		return nil, errors.Wrap(err, "replaying measurement list")
	}

	res := &Result{
		RunID:          runID,
		Algorithm:      e.hash.Name(),
		LinesProcessed: e.lines,
		Computed:       hex.EncodeToString(e.Value()),
	}
	res.Matched, res.MatchLine = e.Matched()
	if e.watch != nil {
		res.Namespace = e.watch.report()
	}

	if res.Matched {
		logger.Infof("PCR %d validated", PCRIndex)
	} else {
		logger.Warnf("PCR %d mismatch, computed %s", PCRIndex, res.Computed)
	}
	return res, nil
}
