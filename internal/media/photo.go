package media

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
)

// Foto de perfil sempre vira webp quadrado de lado fixo; o formato de
// entrada (jpeg/png) é detectado pelo decoder.
const (
	PhotoSide    = 256
	photoQuality = 85
)

// NormalizePhoto decodifica a imagem enviada, recorta o maior quadrado
// central, reduz para PhotoSide e devolve os bytes webp.
func NormalizePhoto(r io.Reader, maxBytes int64) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > maxBytes {
		return nil, httperr.ErrBusiness("file_too_large")
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	square := centerSquare(src.Bounds())

	dst := image.NewRGBA(image.Rect(0, 0, PhotoSide, PhotoSide))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, square, draw.Over, nil)

	var out bytes.Buffer
	if err := webp.Encode(&out, dst, &webp.Options{Quality: photoQuality}); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func centerSquare(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	side := w
	if h < side {
		side = h
	}

	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	return image.Rect(x0, y0, x0+side, y0+side)
}
