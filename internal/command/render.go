package command

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Gunvolt24/pricecache/pkg/pricetier"
)

// tierStyle — цвет строки по тиру; TierNone без цвета.
func tierStyle(r *lipgloss.Renderer, t pricetier.Tier) lipgloss.Style {
	style := r.NewStyle()
	if c := t.Color(); c != 0 {
		style = style.Foreground(lipgloss.Color(fmt.Sprintf("#%06X", c&0xFFFFFF)))
	}
	return style
}

// writeTable — таблица без рамок; строки красятся по тиру.
func writeTable(w io.Writer, headers []string, rows [][]string, tiers []pricetier.Tier) {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = header
			case row >= 0 && row < len(tiers):
				style = tierStyle(r, tiers[row])
			default:
				style = r.NewStyle()
			}
			if col > 0 {
				style = style.PaddingLeft(2)
			}
			return style
		})

	fmt.Fprintln(w, t.Render())
}
