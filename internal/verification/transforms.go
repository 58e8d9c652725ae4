package verification

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Frame preprocessing used by the QR locator cascade. Scan artifacts (skew,
// lighting, compression) degrade QR legibility in different ways, so the
// locator runs redundant transforms rather than a single cleanup pass.

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

func grayscale(img image.Image) image.Image {
	return toGray(img)
}

func invert(img image.Image) image.Image {
	return imaging.Invert(img)
}

func upscale2x(img image.Image) image.Image {
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*2, b.Dy()*2, imaging.Lanczos)
}

// otsuThreshold binarizes with the global threshold that minimizes
// intra-class variance.
func otsuThreshold(img image.Image) image.Image {
	gray := toGray(img)
	b := gray.Bounds()

	var hist [256]int
	total := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[gray.GrayAt(x, y).Y]++
			total++
		}
	}
	if total == 0 {
		return gray
	}

	sum := 0.0
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var (
		sumB, wB  float64
		maxVar    float64
		threshold uint8
	)
	for i := 0; i < 256; i++ {
		wB += float64(hist[i])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(hist[i])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > maxVar {
			maxVar = between
			threshold = uint8(i)
		}
	}
	return binarize(gray, func(x, y int) uint8 { return threshold })
}

// adaptiveThreshold binarizes against the local mean over a square window,
// which copes with uneven lighting better than a global cut.
func adaptiveThreshold(img image.Image) image.Image {
	const window = 25
	const bias = 7

	gray := toGray(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return gray
	}

	// Summed-area table for O(1) window means.
	integral := make([]int64, (w+1)*(h+1))
	idx := func(x, y int) int { return y*(w+1) + x }
	for y := 1; y <= h; y++ {
		for x := 1; x <= w; x++ {
			v := int64(gray.GrayAt(b.Min.X+x-1, b.Min.Y+y-1).Y)
			integral[idx(x, y)] = v + integral[idx(x-1, y)] + integral[idx(x, y-1)] - integral[idx(x-1, y-1)]
		}
	}

	half := window / 2
	return binarize(gray, func(px, py int) uint8 {
		x := px - b.Min.X
		y := py - b.Min.Y
		x0, y0 := maxInt(0, x-half), maxInt(0, y-half)
		x1, y1 := minInt(w-1, x+half), minInt(h-1, y+half)
		area := int64((x1 - x0 + 1) * (y1 - y0 + 1))
		sum := integral[idx(x1+1, y1+1)] - integral[idx(x0, y1+1)] - integral[idx(x1+1, y0)] + integral[idx(x0, y0)]
		mean := sum / area
		t := mean - bias
		if t < 0 {
			t = 0
		}
		return uint8(t)
	})
}

func binarize(gray *image.Gray, thresholdAt func(x, y int) uint8) *image.Gray {
	b := gray.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y > thresholdAt(x, y) {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}

// equalizeLocalContrast is a tiled, clip-limited histogram equalization.
// Each tile is equalized independently with its histogram clipped so flat
// regions do not blow up into noise.
func equalizeLocalContrast(img image.Image) image.Image {
	const tiles = 8
	const clipLimit = 2.0

	gray := toGray(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < tiles || h < tiles {
		return gray
	}

	out := image.NewGray(b)
	tileW := (w + tiles - 1) / tiles
	tileH := (h + tiles - 1) / tiles

	for ty := 0; ty < tiles; ty++ {
		for tx := 0; tx < tiles; tx++ {
			x0 := b.Min.X + tx*tileW
			y0 := b.Min.Y + ty*tileH
			x1 := minInt(x0+tileW, b.Max.X)
			y1 := minInt(y0+tileH, b.Max.Y)
			equalizeTile(gray, out, x0, y0, x1, y1, clipLimit)
		}
	}
	return out
}

func equalizeTile(src, dst *image.Gray, x0, y0, x1, y1 int, clipLimit float64) {
	var hist [256]int
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[src.GrayAt(x, y).Y]++
			n++
		}
	}
	if n == 0 {
		return
	}

	// Clip the histogram and redistribute the excess uniformly.
	limit := int(clipLimit * float64(n) / 256.0)
	if limit < 1 {
		limit = 1
	}
	excess := 0
	for i := range hist {
		if hist[i] > limit {
			excess += hist[i] - limit
			hist[i] = limit
		}
	}
	spread := excess / 256
	for i := range hist {
		hist[i] += spread
	}

	var cdf [256]int
	running := 0
	for i, c := range hist {
		running += c
		cdf[i] = running
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			v := src.GrayAt(x, y).Y
			mapped := uint8(int64(cdf[v]) * 255 / int64(running))
			dst.SetGray(x, y, color.Gray{Y: mapped})
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
