package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorWhite = lipgloss.Color("255")
	colorDim   = lipgloss.Color("240")
	colorAmber = lipgloss.Color("220")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim).Width(12)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning = lipgloss.NewStyle().Foreground(colorAmber)
)

// printer formats counts with thousands separators.
var printer = message.NewPrinter(language.English)

func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func formatTitle(base string, fps uint64) string {
	return printer.Sprintf("%s · %d fps", base, fps)
}

// table prints aligned label/value rows under a title.
type table struct {
	title string
	rows  [][2]string
	warns []string
}

func (t *table) add(label, format string, args ...any) {
	t.rows = append(t.rows, [2]string{label, fmt.Sprintf(format, args...)})
}

func (t *table) warn(msg string) {
	t.warns = append(t.warns, msg)
}

func (t *table) render(w io.Writer) error {
	var b strings.Builder
	b.WriteString(styleTitle.Render(t.title))
	b.WriteByte('\n')
	for _, r := range t.rows {
		b.WriteString(styleLabel.Render(r[0]))
		b.WriteString(styleValue.Render(r[1]))
		b.WriteByte('\n')
	}
	for _, m := range t.warns {
		b.WriteString(styleWarning.Render("! " + m))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
