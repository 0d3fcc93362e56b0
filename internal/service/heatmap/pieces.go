package heatmap

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/park285/presence-heatmap/internal/board"
)

const markerViewBox = 100

type markerCacheKey struct {
	kind board.Kind
	side board.Side
	size int
}

var (
	markerCache   = map[markerCacheKey]image.Image{}
	markerCacheMu sync.RWMutex
)

// renderMarkerImage rasterises the marker of a piece kind at size×size.
// Kinds without a marker return a nil image.
func renderMarkerImage(kind board.Kind, side board.Side, size int) (image.Image, error) {
	key := markerCacheKey{kind: kind, side: side, size: size}

	markerCacheMu.RLock()
	if img, ok := markerCache[key]; ok {
		markerCacheMu.RUnlock()
		return img, nil
	}
	markerCacheMu.RUnlock()

	src := markerSVG(kind, side)
	if src == nil {
		return nil, nil
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse %s marker svg: %w", kind, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	markerCacheMu.Lock()
	markerCache[key] = img
	markerCacheMu.Unlock()

	return img, nil
}

func markerSVG(kind board.Kind, side board.Side) []byte {
	fill, stroke := "#f7f4ee", "#22252f"
	if side == board.Black {
		fill, stroke = "#22252f", "#f7f4ee"
	}
	style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:5", fill, stroke)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(markerViewBox, markerViewBox, 0, 0, markerViewBox, markerViewBox)
	switch kind {
	case board.Pawn:
		canvas.Polygon([]int{28, 72, 64, 36}, []int{84, 84, 56, 56}, style)
		canvas.Circle(50, 38, 17, style)
	case board.Knight:
		canvas.Polygon(
			[]int{26, 76, 72, 60, 70, 62, 44, 24, 30, 46, 40},
			[]int{86, 86, 60, 44, 30, 14, 18, 42, 52, 46, 62},
			style,
		)
		canvas.Circle(50, 30, 4, "fill:"+stroke)
	default:
		return nil
	}
	canvas.End()
	return buf.Bytes()
}
