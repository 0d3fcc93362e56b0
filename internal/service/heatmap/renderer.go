package heatmap

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/park285/presence-heatmap/internal/board"
	core "github.com/park285/presence-heatmap/internal/heatmap"
)

type RenderOptions struct {
	TitleWhite string
	TitleBlack string
	// ShowValues prints the rounded share into each square.
	ShowValues bool
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, grid *core.Grid, pieces []board.Piece, opts RenderOptions) ([]byte, error)
}

type svgHeatmapRenderer struct {
	squareSize int
}

// NewSVGHeatmapRenderer renders both side grids next to each other. The board
// layer is composed as SVG, rasterised, then labelled.
func NewSVGHeatmapRenderer(squareSize int) BoardRenderer {
	if squareSize <= 0 {
		squareSize = 64
	}
	return &svgHeatmapRenderer{squareSize: squareSize}
}

type layout struct {
	square      int
	boardSize   int
	margin      int
	topMargin   int
	totalWidth  int
	totalHeight int
}

func (r *svgHeatmapRenderer) layout() layout {
	l := layout{square: r.squareSize, margin: 28, topMargin: 48}
	l.boardSize = l.square * board.Size
	l.totalWidth = l.boardSize*2 + l.margin*3
	l.totalHeight = l.boardSize + l.topMargin + l.margin
	return l
}

// boardOrigin is the top-left corner of the white (0) or black (1) panel.
func (l layout) boardOrigin(panel int) image.Point {
	return image.Point{X: l.margin + panel*(l.boardSize+l.margin), Y: l.topMargin}
}

// squareOrigin places row 7 at the top, like a board seen from White.
func (l layout) squareOrigin(panel int, sq board.Square) image.Point {
	row, col := sq.Coord()
	o := l.boardOrigin(panel)
	return image.Point{X: o.X + col*l.square, Y: o.Y + (board.Size-1-row)*l.square}
}

func (r *svgHeatmapRenderer) RenderPNG(ctx context.Context, grid *core.Grid, pieces []board.Piece, opts RenderOptions) ([]byte, error) {
	if grid == nil {
		return nil, fmt.Errorf("grid is nil")
	}
	l := r.layout()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img, err := rasteriseHeat(composeHeatSVG(grid, l), l)
	if err != nil {
		return nil, err
	}
	if err := drawMarkers(img, pieces, l); err != nil {
		return nil, err
	}
	drawTitles(img, l, opts)
	if opts.ShowValues {
		drawValues(img, grid, l)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return pngBuf.Bytes(), nil
}

var (
	backgroundColor = color.RGBA{28, 31, 46, 255}
	lightSquare     = color.RGBA{233, 207, 163, 255}
	darkSquare      = color.RGBA{187, 136, 96, 255}
	whiteHeat       = color.RGBA{255, 116, 24, 255}
	blackHeat       = color.RGBA{44, 112, 255, 255}
	titleTextColor  = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	valueTextColor  = color.NRGBA{R: 16, G: 18, B: 26, A: 255}
)

func composeHeatSVG(grid *core.Grid, l layout) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(l.totalWidth, l.totalHeight, 0, 0, l.totalWidth, l.totalHeight)
	canvas.Rect(0, 0, l.totalWidth, l.totalHeight, fillStyle(backgroundColor))
	for panel, heat := range []color.RGBA{whiteHeat, blackHeat} {
		for sq := board.Square(0); sq < board.NumSquares; sq++ {
			rec := grid.At(sq)
			v := rec.SumWhite
			if panel == 1 {
				v = rec.SumBlack
			}
			o := l.squareOrigin(panel, sq)
			clr := blend(squareColor(sq), heat, v/board.FullShare)
			canvas.Rect(o.X, o.Y, l.square, l.square, fillStyle(clr))
		}
	}
	canvas.End()
	return buf.Bytes()
}

func rasteriseHeat(src []byte, l layout) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse heatmap svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(l.totalWidth), float64(l.totalHeight))

	img := image.NewRGBA(image.Rect(0, 0, l.totalWidth, l.totalHeight))
	scanner := rasterx.NewScannerGV(l.totalWidth, l.totalHeight, img, img.Bounds())
	raster := rasterx.NewDasher(l.totalWidth, l.totalHeight, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

func drawMarkers(dst *image.RGBA, pieces []board.Piece, l layout) error {
	size := l.square * 3 / 5
	inset := (l.square - size) / 2
	for _, p := range pieces {
		if !p.Square.Valid() {
			continue
		}
		marker, err := renderMarkerImage(p.Kind, p.Side, size)
		if err != nil {
			return err
		}
		if marker == nil {
			continue
		}
		for panel := 0; panel < 2; panel++ {
			o := l.squareOrigin(panel, p.Square).Add(image.Point{X: inset, Y: inset})
			imagedraw.Draw(dst, image.Rect(o.X, o.Y, o.X+size, o.Y+size), marker, image.Point{}, imagedraw.Over)
		}
	}
	return nil
}

func drawTitles(dst *image.RGBA, l layout, opts RenderOptions) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: dst, Src: image.NewUniform(titleTextColor), Face: face}
	for panel, title := range []string{opts.TitleWhite, opts.TitleBlack} {
		if title == "" {
			continue
		}
		o := l.boardOrigin(panel)
		drawCenteredText(drawer, title, o.X+l.boardSize/2, l.topMargin-16)
	}
}

func drawValues(dst *image.RGBA, grid *core.Grid, l layout) {
	drawer := &font.Drawer{Dst: dst, Src: image.NewUniform(valueTextColor), Face: basicfont.Face7x13}
	for panel := 0; panel < 2; panel++ {
		for sq := board.Square(0); sq < board.NumSquares; sq++ {
			rec := grid.At(sq)
			v := rec.SumWhite
			if panel == 1 {
				v = rec.SumBlack
			}
			if v <= 0 {
				continue
			}
			o := l.squareOrigin(panel, sq)
			drawCenteredText(drawer, fmt.Sprintf("%.0f", v), o.X+l.square/2, o.Y+l.square-4)
		}
	}
}

func drawCenteredText(drawer *font.Drawer, text string, centerX, baseline int) {
	width := drawer.MeasureString(text).Ceil()
	drawer.Dot = fixed.P(centerX-width/2, baseline)
	drawer.DrawString(text)
}

func squareColor(sq board.Square) color.RGBA {
	row, col := sq.Coord()
	if (row+col)%2 == 0 {
		return darkSquare
	}
	return lightSquare
}

// blend mixes base toward heat by t, clamped to [0,1].
func blend(base, heat color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.RGBA{mix(base.R, heat.R), mix(base.G, heat.G), mix(base.B, heat.B), 255}
}

func fillStyle(c color.RGBA) string {
	return fmt.Sprintf("fill:#%02x%02x%02x", c.R, c.G, c.B)
}
