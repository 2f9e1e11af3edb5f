package structure

import (
	"context"
	"errors"
	"log/slog"

	"github.com/paperforge/paperfmt/internal/docmodel"
	"github.com/paperforge/paperfmt/internal/oracle"
)

// Oracle is the external classification service the model stage consults.
type Oracle interface {
	ClassifyStructure(ctx context.Context, text string) (*oracle.Outline, error)
}

// Stage failure reasons. A failed stage cascades to the next one; these
// never escape Classify.
var (
	errNoTitle     = errors.New("no title or sections found by style")
	errNoStructure = errors.New("no structure found")
	errNoOracle    = errors.New("model assistance disabled")
)

// Classifier assigns each non-empty paragraph a structural role with the
// cheapest method that works: named styles first, text heuristics second,
// and the model oracle last.
type Classifier struct {
	oracle Oracle // nil when model assistance is disabled
	log    *slog.Logger
	stats  *StageStats
}

// NewClassifier builds a classifier. Pass a nil oracle to disable the
// model stage.
func NewClassifier(o Oracle, log *slog.Logger) *Classifier {
	if log == nil {
		log = slog.Default()
	}
	return &Classifier{oracle: o, log: log, stats: NewStageStats()}
}

// Stats exposes the cascade stage counters.
func (c *Classifier) Stats() *StageStats {
	return c.stats
}

// Classify runs the cascade. The first stage whose success predicate
// holds wins and later stages are skipped. It never fails for a
// well-formed document: when every stage comes up empty the returned
// index is empty and the caller must treat the document as unstructured.
func (c *Classifier) Classify(ctx context.Context, doc *docmodel.Document) *StructureIndex {
	paras := doc.Paragraphs()

	c.stats.enter(StageStyle)
	if idx, err := classifyByStyle(paras); err == nil {
		c.stats.succeed(StageStyle)
		return idx
	} else {
		c.log.Debug("style stage failed", "reason", err)
	}

	c.stats.enter(StageHeuristic)
	if idx, err := classifyByHeuristic(paras); err == nil {
		c.stats.succeed(StageHeuristic)
		return idx
	} else {
		c.log.Debug("heuristic stage failed", "reason", err)
	}

	if c.oracle == nil {
		c.log.Warn("all rule stages failed and model assistance is disabled")
		return NewIndex()
	}

	c.stats.enter(StageModel)
	idx, err := c.classifyByModel(ctx, paras)
	if err != nil {
		// Oracle failure degrades to an empty index, never an error.
		c.log.Warn("model stage failed", "error", err)
		return NewIndex()
	}
	c.stats.succeed(StageModel)
	return idx
}
