// Package imaging renders dino images: single dinos by layering part
// fragments, and collections as a square-ish grid of finished dinos.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

const (
	// DinoImageSize is the width and height of a rendered dino in pixels
	DinoImageSize = 112

	// CellMargin is the gap between grid cells in pixels
	CellMargin = 2
)

// GridLayout returns the column and row counts for a collection of n dinos.
// Columns are the ceiling of the square root, rows whatever is needed to
// fit the rest; cells fill row-major.
func GridLayout(n int) (columns, rows int) {
	if n <= 0 {
		return 0, 0
	}

	columns = int(math.Ceil(math.Sqrt(float64(n))))
	rows = int(math.Ceil(float64(n) / float64(columns)))
	return columns, rows
}

// CellOrigin returns the pixel origin of cell i in a grid with the given
// column count.
func CellOrigin(i, columns int) (x, y int) {
	x = (i % columns) * (DinoImageSize + CellMargin)
	y = (i / columns) * (DinoImageSize + CellMargin)
	return x, y
}

// Composer renders dino images into an output directory
type Composer struct {
	outputDir string
}

// NewComposer creates a composer writing to outputDir, creating it if needed
func NewComposer(outputDir string) (*Composer, error) {
	if outputDir == "" {
		return nil, errors.New("output directory cannot be empty")
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Composer{
		outputDir: outputDir,
	}, nil
}

// OutputPath returns the on-disk path for a rendered file name
func (c *Composer) OutputPath(filename string) string {
	return filepath.Join(c.outputDir, filename)
}

// ComposeDino layers the three part images in body, mouth, eyes order at a
// shared origin, writes the PNG to the output directory as <name>.png and
// returns the file name.
func (c *Composer) ComposeDino(bodyPath, mouthPath, eyesPath, name string) (string, error) {
	body, err := loadPNG(bodyPath)
	if err != nil {
		return "", err
	}
	mouth, err := loadPNG(mouthPath)
	if err != nil {
		return "", err
	}
	eyes, err := loadPNG(eyesPath)
	if err != nil {
		return "", err
	}

	canvas := image.NewRGBA(body.Bounds())
	draw.Draw(canvas, canvas.Bounds(), body, body.Bounds().Min, draw.Over)
	draw.Draw(canvas, canvas.Bounds(), mouth, mouth.Bounds().Min, draw.Over)
	draw.Draw(canvas, canvas.Bounds(), eyes, eyes.Bounds().Min, draw.Over)

	filename := name + ".png"
	out, err := os.Create(c.OutputPath(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create dino image: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, canvas); err != nil {
		return "", fmt.Errorf("failed to encode dino image: %w", err)
	}

	return filename, nil
}

// CollectionImage composes previously rendered dinos into a grid and
// returns the encoded PNG.
func (c *Composer) CollectionImage(filenames []string) ([]byte, error) {
	if len(filenames) == 0 {
		return nil, errors.New("collection cannot be empty")
	}

	columns, rows := GridLayout(len(filenames))
	width := columns*DinoImageSize + (columns-1)*CellMargin
	height := rows*DinoImageSize + (rows-1)*CellMargin

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, filename := range filenames {
		dino, err := loadPNG(c.OutputPath(filename))
		if err != nil {
			return nil, err
		}

		x, y := CellOrigin(i, columns)
		cell := image.Rect(x, y, x+DinoImageSize, y+DinoImageSize)
		draw.Draw(canvas, cell, dino, dino.Bounds().Min, draw.Over)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode collection image: %w", err)
	}

	return buf.Bytes(), nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return img, nil
}
