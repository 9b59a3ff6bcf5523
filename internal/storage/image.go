package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	// registers the webp decoder so oversized webp uploads can be measured
	_ "golang.org/x/image/webp"
)

// Downscale shrinks a jpeg or png so its longest side is at most maxDim. It
// reports whether the bytes changed; other formats are returned unchanged.
func Downscale(data []byte, mimeType string, maxDim int) ([]byte, bool, error) {
	if maxDim <= 0 {
		return data, false, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return data, false, err
	}
	if cfg.Width <= maxDim && cfg.Height <= maxDim {
		return data, false, nil
	}
	if mimeType != "image/jpeg" && mimeType != "image/png" {
		return data, false, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, false, err
	}
	w, h := fit(cfg.Width, cfg.Height, maxDim)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if mimeType == "image/png" {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return data, false, err
	}
	return buf.Bytes(), true, nil
}

// Dimensions reads width and height without decoding pixels.
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func fit(w, h, maxDim int) (int, int) {
	if w >= h {
		nh := h * maxDim / w
		if nh < 1 {
			nh = 1
		}
		return maxDim, nh
	}
	nw := w * maxDim / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxDim
}
