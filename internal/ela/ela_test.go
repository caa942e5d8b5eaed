package ela

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudwatch/internal/model"
)

func flatGray(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 128, 128, 128, 255
	}
	return img
}

func textured(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8((x*31 + y*7) % 256)
			img.Pix[i+1] = uint8((x*13 + y*29) % 256)
			img.Pix[i+2] = uint8((x*3 + y*11) % 256)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func TestIdenticalRecompressionIsBlack(t *testing.T) {
	// A flat mid-gray image survives JPEG recompression byte-identically,
	// so the difference is zero everywhere and the divide-by-zero guard
	// must kick in.
	out, err := FromImage(flatGray(64, 64), DefaultQuality)
	require.NoError(t, err)

	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			require.Zerof(t, out.Pix[i+c], "nonzero channel at offset %d", i+c)
		}
	}
}

func TestScaleReachesFullRange(t *testing.T) {
	out, err := FromImage(textured(64, 64), DefaultQuality)
	require.NoError(t, err)

	maxChannel := uint8(0)
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			if out.Pix[i+c] > maxChannel {
				maxChannel = out.Pix[i+c]
			}
		}
	}
	assert.Equal(t, uint8(255), maxChannel, "scaled difference should peak at 255")
}

func TestOutputDimensionsMatchInput(t *testing.T) {
	out, err := FromImage(textured(50, 30), DefaultQuality)
	require.NoError(t, err)

	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, 30, out.Bounds().Dy())
}

func TestGrayscaleInputCoerced(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			gray.Pix[y*gray.Stride+x] = uint8((x*17 + y*43) % 256)
		}
	}

	out, err := FromImage(gray, DefaultQuality)
	require.NoError(t, err)
	assert.Equal(t, 32, out.Bounds().Dx())
	assert.Equal(t, 32, out.Bounds().Dy())
}

func TestFromFileRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.png")
	require.NoError(t, os.WriteFile(path, []byte("definitely not pixels"), 0o644))

	_, err := FromFile(path, DefaultQuality)
	require.Error(t, err)

	var inputErr *model.InputFormatError
	assert.True(t, errors.As(err, &inputErr))
}

func TestFromFileMissingFile(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.png"), DefaultQuality)
	require.Error(t, err)
}
