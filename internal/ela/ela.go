// Package ela implements Error-Level-Analysis preprocessing. Regions that
// were edited or spliced into an image carry a different JPEG
// recompression-error signature than the rest; the transform amplifies
// that difference into structure a classifier can learn.
package ela

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"

	"github.com/fraudwatch/internal/model"
)

// DefaultQuality is the JPEG quality used for the re-encode step.
const DefaultQuality = 90

// FromFile runs the transform on the image stored at path.
func FromFile(path string, quality int) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &model.InputFormatError{Field: "invoice", Reason: fmt.Sprintf("decode image: %v", err)}
	}
	return FromImage(img, quality)
}

// FromImage computes the ELA image of src at the given JPEG quality. The
// re-encode happens in an in-memory buffer, so concurrent requests share
// no state. The output has the same dimensions as the input.
func FromImage(src image.Image, quality int) (*image.NRGBA, error) {
	if quality <= 0 {
		quality = DefaultQuality
	}

	// Clone coerces grayscale, palette and alpha inputs to 8-bit RGBA.
	orig := imaging.Clone(src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, orig, &jpeg.Options{Quality: quality}); err != nil {
		return nil, &model.InputFormatError{Field: "invoice", Reason: fmt.Sprintf("re-encode jpeg: %v", err)}
	}
	recoded, err := jpeg.Decode(&buf)
	if err != nil {
		return nil, &model.InputFormatError{Field: "invoice", Reason: fmt.Sprintf("decode re-encoded jpeg: %v", err)}
	}
	comp := imaging.Clone(recoded)

	diff := image.NewNRGBA(image.Rect(0, 0, orig.Bounds().Dx(), orig.Bounds().Dy()))
	maxDiff := 0
	for i := 0; i < len(orig.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			d := absDiff(orig.Pix[i+c], comp.Pix[i+c])
			diff.Pix[i+c] = d
			if int(d) > maxDiff {
				maxDiff = int(d)
			}
		}
		diff.Pix[i+3] = 0xff
	}

	// A byte-identical recompression yields an all-zero difference; keep
	// the scale finite so the output is pure black rather than an error.
	if maxDiff == 0 {
		maxDiff = 1
	}

	scale := 255.0 / float64(maxDiff)
	for i := 0; i < len(diff.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := float64(diff.Pix[i+c]) * scale
			if v > 255 {
				v = 255
			}
			diff.Pix[i+c] = uint8(v + 0.5)
		}
	}

	return diff, nil
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
