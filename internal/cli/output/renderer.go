package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	tty    bool
	styles *Styles
}

// NewRenderer creates a renderer. ModeAuto is resolved against out.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	tty := isTerminal(out)

	lr := lipgloss.NewRenderer(out)
	if !tty {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   Resolve(mode, tty),
		tty:    tty,
		styles: newStyles(lr),
	}
}

// Mode returns the effective output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// IsTTY reports whether stdout is a terminal.
func (r *Renderer) IsTTY() bool {
	return r.tty
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Println writes a line to stdout.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Header writes a styled heading.
func (r *Renderer) Header(level int, s string) {
	if level <= 1 {
		r.Println(r.styles.Header.Render(s))
		return
	}
	r.Println(r.styles.Header2.Render(s))
}

// Success writes a success line.
func (r *Renderer) Success(s string) {
	r.Println(r.styles.Success.Render("✔ ") + s)
}

// Muted writes a dimmed line.
func (r *Renderer) Muted(s string) {
	r.Println(r.styles.Muted.Render(s))
}

// Warning writes a warning line to stderr.
func (r *Renderer) Warning(s string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("! ")+s)
}

// Error writes an error line to stderr.
func (r *Renderer) Error(s string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✘ ")+s)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Table writes rows as a box table in text mode and a markdown table otherwise.
func (r *Renderer) Table(headers []string, rows [][]string) {
	t := table.NewWriter()

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)

	for _, cells := range rows {
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		t.AppendRow(row)
	}

	if r.mode == ModeMarkdown {
		r.Println(t.RenderMarkdown())
		return
	}
	t.SetStyle(table.StyleLight)
	r.Println(t.Render())
}

// FormatHeader returns a markdown heading.
func FormatHeader(level int, s string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + s
}

// FormatKeyValue returns a markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}

// FormatCode wraps s in backticks.
func FormatCode(s string) string {
	return "`" + s + "`"
}
