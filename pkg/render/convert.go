package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"

	"github.com/matzehuels/tutte/pkg/errors"
)

// converter is the external program used for raster and PDF output.
const converter = "rsvg-convert"

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(context.Background(), svg, "pdf")
}

// ToPNG converts SVG bytes to PNG. scale multiplies the SVG's size, so 2.0
// gives a 2x image. Scales that are not positive are rejected.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if !(scale > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be > 0, got %g", scale)
	}
	return convert(context.Background(), svg, "png", "-z", strconv.FormatFloat(scale, 'f', 2, 64))
}

// Available reports whether rsvg-convert is installed, i.e. whether
// [ToPDF] and [ToPNG] can succeed.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

// convert pipes svg through rsvg-convert. A missing converter is an
// UNSUPPORTED error.
func convert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !Available() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, converter, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", converter, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
