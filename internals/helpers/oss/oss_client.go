package oss

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if v := getEnv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			return float32(f)
		}
	}
	return def
}

/* =======================================================================
   WebP conversion for uploaded document/photo images (ENV-driven)
======================================================================= */

type WebPOptions struct {
	MaxW    int     // resize bound, keep aspect
	MaxH    int
	Quality float32
}

func defaultWebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:    envInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:    envInt("IMAGE_WEBP_MAX_H", 1600),
		Quality: envFloat("IMAGE_WEBP_QUALITY", 80),
	}
}

func decodeImage(all []byte) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	default:
		return nil, fmt.Errorf("unsupported image type: %s", ct)
	}
}

// ConvertToWebP normalises an uploaded image: bounded resize, then lossy
// WebP. Unsupported inputs are returned to the caller as an error so the
// original bytes can be stored untouched.
func ConvertToWebP(all []byte) ([]byte, error) {
	return ConvertToWebPWithOptions(all, defaultWebPOptionsFromEnv())
}

func ConvertToWebPWithOptions(all []byte, opt WebPOptions) ([]byte, error) {
	img, err := decodeImage(all)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() > opt.MaxW || b.Dy() > opt.MaxH {
		img = imaging.Fit(img, opt.MaxW, opt.MaxH, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: opt.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
