// Package classifier maps model outputs onto verdicts for the two
// scoring pipelines.
package classifier

import (
	"context"
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"github.com/fraudwatch/internal/model"
)

// inputSize is the side length of the network input.
const inputSize = 128

// ImagePredictor returns class probabilities for one preprocessed image.
type ImagePredictor interface {
	Predict(ctx context.Context, instance [][][]float32) ([]float32, error)
}

// ImageScorer classifies ELA-preprocessed invoice images.
type ImageScorer struct {
	predictor ImagePredictor
}

func NewImageScorer(p ImagePredictor) *ImageScorer {
	return &ImageScorer{predictor: p}
}

// Score resizes the ELA image to the network input, scales channels to
// [0,1] and maps the argmax class onto a verdict.
func (s *ImageScorer) Score(ctx context.Context, ela image.Image) (model.Verdict, error) {
	resized := imaging.Resize(ela, inputSize, inputSize, imaging.Lanczos)

	tensor := make([][][]float32, inputSize)
	for y := 0; y < inputSize; y++ {
		row := make([][]float32, inputSize)
		for x := 0; x < inputSize; x++ {
			i := resized.PixOffset(x, y)
			row[x] = []float32{
				float32(resized.Pix[i]) / 255,
				float32(resized.Pix[i+1]) / 255,
				float32(resized.Pix[i+2]) / 255,
			}
		}
		tensor[y] = row
	}

	probs, err := s.predictor.Predict(ctx, tensor)
	if err != nil {
		return 0, &model.ModelError{Op: "invoice model", Err: err}
	}
	if len(probs) == 0 {
		return 0, &model.ModelError{Op: "invoice model", Err: errors.New("empty prediction")}
	}

	return VerdictFromProbs(probs), nil
}

// VerdictFromProbs maps the invoice model's class probabilities onto a
// verdict. The training label order is index 0 = forged, index 1 = real;
// re-validate against the shipped artifact before changing this.
func VerdictFromProbs(probs []float32) model.Verdict {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	if best == 0 {
		return model.VerdictSuspicious
	}
	return model.VerdictClean
}
