package classifier

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudwatch/internal/model"
)

type stubPredictor struct {
	probs    []float32
	err      error
	instance [][][]float32
}

func (s *stubPredictor) Predict(_ context.Context, instance [][][]float32) ([]float32, error) {
	s.instance = instance
	if s.err != nil {
		return nil, s.err
	}
	return s.probs, nil
}

func uniform(w, h int, value uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = value, value, value, 255
	}
	return img
}

func TestScoreBuildsNormalizedTensor(t *testing.T) {
	pred := &stubPredictor{probs: []float32{0.1, 0.9}}
	scorer := NewImageScorer(pred)

	verdict, err := scorer.Score(context.Background(), uniform(64, 64, 255))
	require.NoError(t, err)
	assert.Equal(t, model.VerdictClean, verdict)

	require.Len(t, pred.instance, 128)
	require.Len(t, pred.instance[0], 128)
	require.Len(t, pred.instance[0][0], 3)

	for y := range pred.instance {
		for x := range pred.instance[y] {
			for c := range pred.instance[y][x] {
				assert.InDelta(t, 1.0, pred.instance[y][x][c], 1e-6)
			}
		}
	}
}

func TestScoreZeroImageYieldsZeroTensor(t *testing.T) {
	pred := &stubPredictor{probs: []float32{0.5, 0.5}}
	scorer := NewImageScorer(pred)

	_, err := scorer.Score(context.Background(), uniform(64, 64, 0))
	require.NoError(t, err)

	for y := range pred.instance {
		for x := range pred.instance[y] {
			for c := range pred.instance[y][x] {
				require.Zero(t, pred.instance[y][x][c])
			}
		}
	}
}

func TestVerdictFromProbs(t *testing.T) {
	cases := []struct {
		name  string
		probs []float32
		want  model.Verdict
	}{
		{"forged wins", []float32{0.9, 0.1}, model.VerdictSuspicious},
		{"real wins", []float32{0.1, 0.9}, model.VerdictClean},
		{"tie goes to first class", []float32{0.5, 0.5}, model.VerdictSuspicious},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VerdictFromProbs(tc.probs))
		})
	}
}

func TestScoreWrapsPredictorError(t *testing.T) {
	pred := &stubPredictor{err: errors.New("connection refused")}
	scorer := NewImageScorer(pred)

	_, err := scorer.Score(context.Background(), uniform(32, 32, 128))
	require.Error(t, err)

	var modelErr *model.ModelError
	require.True(t, errors.As(err, &modelErr))
	assert.Equal(t, "invoice model", modelErr.Op)
}

func TestScoreRejectsEmptyPrediction(t *testing.T) {
	pred := &stubPredictor{probs: []float32{}}
	scorer := NewImageScorer(pred)

	_, err := scorer.Score(context.Background(), uniform(32, 32, 128))
	require.Error(t, err)

	var modelErr *model.ModelError
	assert.True(t, errors.As(err, &modelErr))
}
