// seehuhn.de/go/dotmatrix - dot-matrix image rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dotmatrix

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
)

// EncodePNG encodes img as a PNG file.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	buf := &bytes.Buffer{}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export renders src at the given size and encodes the result as PNG in
// the background.  The settings are copied when Export is called, so
// later changes by the caller have no effect.  The returned channel
// delivers exactly one value and is then closed; the value is nil if
// rendering or encoding failed or ctx was cancelled.
func (r *Renderer) Export(ctx context.Context, src image.Image, s Settings, size image.Point) <-chan []byte {
	out := make(chan []byte, 1)
	go func() {
		defer close(out)
		data, err := r.export(ctx, src, s, size)
		if err != nil {
			r.logger().Error("export failed", "variant", s.Variant, "size", size, "error", err)
			out <- nil
			return
		}
		out <- data
	}()
	return out
}

// Export is Renderer.Export with the default logger.
func Export(ctx context.Context, src image.Image, s Settings, size image.Point) <-chan []byte {
	return (&Renderer{}).Export(ctx, src, s, size)
}

func (r *Renderer) export(ctx context.Context, src image.Image, s Settings, size image.Point) ([]byte, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.New("export: empty output size")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := r.RenderImage(src, s, size)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return EncodePNG(img)
}
