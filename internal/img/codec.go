// Package img turns uploaded image files into the self-describing
// encoded strings the store keeps: a data URI tagging the output
// format together with the base64 payload. Input decoding understands
// jpeg, png, gif and webp. Output format is negotiated through the
// encoder registry, jpeg is always available and a better format is
// used when one is registered.
package img

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	// thumbnail generated at upload time
	ThumbMaxWidth = 400
	thumbQuality  = 92

	// originals wider than this get the lighter filter
	originalStandardWidth = 2048

	// thumbnail regenerated during archive import
	ImportThumbMaxSize = 300
	importThumbQuality = 70
)

// per-format encode quality for optimized originals
var originalQuality = map[string]int{
	"webp": 95,
	"jpeg": 92,
}

type Encoder interface {
	Format() string
	Encode(w io.Writer, m image.Image, quality int) error
}

var (
	encMu    sync.RWMutex
	encoders = map[string]Encoder{}
)

// formats in preference order, first registered wins
var preferredFormats = []string{"webp", "avif", "jpeg"}

func RegisterEncoder(e Encoder) {
	encMu.Lock()
	defer encMu.Unlock()
	encoders[e.Format()] = e
}

func bestEncoder() Encoder {
	encMu.RLock()
	defer encMu.RUnlock()
	for _, f := range preferredFormats {
		if e, ok := encoders[f]; ok {
			return e
		}
	}
	// fall back to any registered encoder, deterministically
	names := make([]string, 0, len(encoders))
	for n := range encoders {
		names = append(names, n)
	}
	sort.Strings(names)
	return encoders[names[0]]
}

type jpegEncoder struct{}

func (jpegEncoder) Format() string { return "jpeg" }

func (jpegEncoder) Encode(w io.Writer, m image.Image, quality int) error {
	return jpeg.Encode(w, m, &jpeg.Options{Quality: quality})
}

func init() {
	RegisterEncoder(jpegEncoder{})
}

// MakeThumbnail decodes the image, scales it to maxWidth keeping the
// aspect ratio, applies the cosmetic filter and re-encodes it in the
// best available format
func MakeThumbnail(r io.Reader, maxWidth int) (string, error) {
	if maxWidth <= 0 {
		maxWidth = ThumbMaxWidth
	}
	src, err := imaging.Decode(r)
	if err != nil {
		return "", fmt.Errorf("could not decode image: %w", err)
	}
	thumb := imaging.Resize(src, maxWidth, 0, imaging.Lanczos)
	thumb = imaging.AdjustContrast(thumb, 10)
	thumb = imaging.AdjustSaturation(thumb, 10)
	return encodeBest(thumb, thumbQuality, nil)
}

// MakeOptimizedOriginal re-encodes the image at its native resolution.
// Images above the standard width get a lighter cosmetic filter
func MakeOptimizedOriginal(r io.Reader) (string, error) {
	src, err := imaging.Decode(r)
	if err != nil {
		return "", fmt.Errorf("could not decode image: %w", err)
	}
	var out = src
	if src.Bounds().Dx() <= originalStandardWidth {
		out = imaging.AdjustContrast(out, 5)
		out = imaging.AdjustSaturation(out, 2)
	} else {
		out = imaging.AdjustContrast(out, 3)
		out = imaging.AdjustSaturation(out, 1)
	}
	return encodeBest(out, 0, originalQuality)
}

// MakeImportThumbnail regenerates a thumbnail from raw image bytes
// during archive import: at most ImportThumbMaxSize on the longer
// side, always jpeg
func MakeImportThumbnail(data []byte) (string, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("could not decode image: %w", err)
	}
	b := src.Bounds()
	if b.Dx() > ImportThumbMaxSize || b.Dy() > ImportThumbMaxSize {
		src = imaging.Fit(src, ImportThumbMaxSize, ImportThumbMaxSize, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err = (jpegEncoder{}).Encode(&buf, src, importThumbQuality); err != nil {
		return "", err
	}
	return EncodeDataURI("jpeg", buf.Bytes()), nil
}

func encodeBest(m image.Image, quality int, perFormat map[string]int) (string, error) {
	enc := bestEncoder()
	q := quality
	if perFormat != nil {
		q = perFormat[enc.Format()]
		if q == 0 {
			q = perFormat["jpeg"]
		}
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, m, q); err != nil {
		return "", err
	}
	return EncodeDataURI(enc.Format(), buf.Bytes()), nil
}

// EncodeDataURI wraps raw encoded image bytes into a format-tagged
// data URI, directly storable as Photo.OriginalPath or Thumbnail.Data
func EncodeDataURI(format string, data []byte) string {
	return fmt.Sprintf("data:image/%s;base64,%s", format, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURI returns the raw bytes and format of an encoded-image
// string produced by EncodeDataURI
func DecodeDataURI(s string) ([]byte, string, error) {
	if !strings.HasPrefix(s, "data:image/") {
		return nil, "", fmt.Errorf("not an encoded image string")
	}
	rest := strings.TrimPrefix(s, "data:image/")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, "", fmt.Errorf("encoded image string has no base64 payload")
	}
	format := rest[:sep]
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image payload: %w", err)
	}
	return data, format, nil
}

// SniffFormat guesses the image format from raw bytes, used when
// re-embedding archive entries whose format is unknown
func SniffFormat(data []byte) string {
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		return format
	}
	return "octet-stream"
}
