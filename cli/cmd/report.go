package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/unitgen/lang"
)

//nolint:gochecknoglobals
var (
	reportTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("1")).
				Bold(true)
	reportSourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	reportLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	reportTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// renderReport writes one line per rejected directive, grouped under a
// heading that counts them. Positions are padded to a common width so the
// offending text lines up.
func renderReport(w io.Writer, rejected []lang.Rejection) error {
	if len(rejected) == 0 {
		return nil
	}

	var sb strings.Builder

	noun := "lines"
	if len(rejected) == 1 {
		noun = "line"
	}

	sb.WriteString(reportTitleStyle.Render(
		fmt.Sprintf("%d unrecognized %s:", len(rejected), noun)))
	sb.WriteByte('\n')

	pos := make([]string, len(rejected))
	width := 0

	for i, r := range rejected {
		pos[i] = reportSourceStyle.Render(r.Source) +
			reportLineStyle.Render(":"+strconv.Itoa(r.Line)+":")
		width = max(width, lipgloss.Width(pos[i]))
	}

	for i, r := range rejected {
		sb.WriteString("  ")
		sb.WriteString(pos[i])
		sb.WriteString(strings.Repeat(" ", width-lipgloss.Width(pos[i])+1))
		sb.WriteString(reportTextStyle.Render(r.Text))
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())

	return err
}
