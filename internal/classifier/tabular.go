package classifier

import (
	"context"
	"fmt"

	"github.com/dmitryikh/leaves"

	"github.com/fraudwatch/internal/model"
)

// TransactionScorer classifies a featurized transaction row.
type TransactionScorer interface {
	Score(ctx context.Context, row []float64) (model.Verdict, error)
}

// TabularScorer runs the gradient-boosted laundering model.
type TabularScorer struct {
	ensemble *leaves.Ensemble
}

// LoadTabular loads the laundering model artifact. A missing or corrupt
// artifact refuses startup.
func LoadTabular(path string) (*TabularScorer, error) {
	ensemble, err := leaves.LGEnsembleFromFile(path, true)
	if err != nil {
		return nil, fmt.Errorf("load tabular model %s: %w", path, err)
	}
	return &TabularScorer{ensemble: ensemble}, nil
}

// Score presents the feature row to the ensemble and maps its binary
// label onto a verdict. No thresholding beyond the model's own.
func (s *TabularScorer) Score(_ context.Context, row []float64) (model.Verdict, error) {
	if got, want := len(row), s.ensemble.NFeatures(); got != want {
		return 0, &model.ModelError{
			Op:  "transaction model",
			Err: fmt.Errorf("expected %d features, got %d", want, got),
		}
	}

	p := s.ensemble.PredictSingle(row, 0)
	label := 0
	if p >= 0.5 {
		label = 1
	}
	return VerdictFromLabel(label), nil
}

// VerdictFromLabel maps the tabular model's binary label onto a verdict:
// label 1 is possible laundering.
func VerdictFromLabel(label int) model.Verdict {
	if label == 1 {
		return model.VerdictSuspicious
	}
	return model.VerdictClean
}
