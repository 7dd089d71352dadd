package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/nfnt/resize"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// RasterizeSVG рендерит SVG разметку в PNG для vision-моделей.
//
// Параметры:
//   - svg: исходная разметка
//   - size: сторона квадрата, в который вписывается иконка (пропорции сохраняются)
//   - maxWidth: если > 0 и картинка шире - даунскейл через Lanczos3
//
// Фон белый: у иконок обычно прозрачный фон и чёрные штрихи, на
// прозрачном фоне модель их не различает.
func RasterizeSVG(svg string, size int, maxWidth int) ([]byte, error) {
	if strings.TrimSpace(svg) == "" {
		return nil, fmt.Errorf("rasterize svg: empty input")
	}
	if size <= 0 {
		size = 400
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	// 1. Вписываем viewBox в квадрат size x size
	w, h := fitInside(icon.ViewBox.W, icon.ViewBox.H, size)
	icon.SetTarget(0, 0, float64(w), float64(h))

	// 2. Белый фон + растеризация
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	// 3. Даунскейл при необходимости
	var out image.Image = img
	if maxWidth > 0 && w > maxWidth {
		newHeight := uint(float64(maxWidth) * float64(h) / float64(w))
		out = resize.Resize(uint(maxWidth), newHeight, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// PNGDataURI кодирует PNG в data-uri для image_url частей сообщения.
func PNGDataURI(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// fitInside вписывает прямоугольник vw x vh в квадрат side x side.
// Пустой viewBox считается квадратным.
func fitInside(vw, vh float64, side int) (int, int) {
	if vw <= 0 || vh <= 0 {
		return side, side
	}
	scale := float64(side) / math.Max(vw, vh)
	w := int(math.Round(vw * scale))
	h := int(math.Round(vh * scale))
	return max(w, 1), max(h, 1)
}
