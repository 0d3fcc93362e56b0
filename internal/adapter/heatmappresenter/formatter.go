package heatmappresenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/park285/presence-heatmap/internal/board"
	"github.com/park285/presence-heatmap/internal/heatmap"
	svcheatmap "github.com/park285/presence-heatmap/internal/service/heatmap"
)

const (
	defaultHeaderWhite = "Heatmap White (sum of piece shares per square):"
	defaultHeaderBlack = "Heatmap Black (sum of piece shares per square):"
)

// Messages is the subset of the message catalog the formatter reads.
type Messages interface {
	Text(key, fallback string) string
	Render(key string, data any) (string, error)
}

// Formatter renders heatmap results into plain text blocks.
type Formatter struct {
	messages Messages
}

func NewFormatter(messages Messages) *Formatter {
	return &Formatter{messages: messages}
}

func (f *Formatter) text(key, fallback string) string {
	if f == nil || f.messages == nil {
		return fallback
	}
	return f.messages.Text(key, fallback)
}

// WriteHeatmap prints the White grid then the Black grid, row 0 first,
// each cell as %6.1f.
func (f *Formatter) WriteHeatmap(w io.Writer, g *heatmap.Grid) error {
	if g == nil {
		return fmt.Errorf("grid is nil")
	}
	var sb strings.Builder
	writeSide(&sb, g, f.text("heatmap.header.white", defaultHeaderWhite), board.White)
	writeSide(&sb, g, f.text("heatmap.header.black", defaultHeaderBlack), board.Black)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSide(sb *strings.Builder, g *heatmap.Grid, header string, side board.Side) {
	sb.WriteString("\n")
	sb.WriteString(header)
	sb.WriteString("\n")
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			rec := g.At(board.ToSquare(row, col))
			v := rec.SumWhite
			if side == board.Black {
				v = rec.SumBlack
			}
			fmt.Fprintf(sb, "%6.1f", v)
		}
		sb.WriteString("\n")
	}
}

// Caption is the one-line summary published alongside the image.
func (f *Formatter) Caption(res *svcheatmap.Result) (string, error) {
	if res == nil || res.Grid == nil {
		return "", fmt.Errorf("result is nil")
	}
	data := struct {
		RunID    string
		Pieces   int
		HotWhite string
		HotBlack string
	}{
		RunID:    res.RunID,
		Pieces:   len(res.Pieces),
		HotWhite: hottestLabel(res.Grid, board.White),
		HotBlack: hottestLabel(res.Grid, board.Black),
	}
	if f == nil || f.messages == nil {
		return fmt.Sprintf("Presence heatmap %s | %d pieces | hottest white %s | hottest black %s",
			data.RunID, data.Pieces, data.HotWhite, data.HotBlack), nil
	}
	return f.messages.Render("publish.caption", data)
}

func hottestLabel(g *heatmap.Grid, side board.Side) string {
	sq, v := g.Hottest(side)
	if sq == board.NoSquare {
		return "-"
	}
	return fmt.Sprintf("%s (%.1f)", sq, v)
}
