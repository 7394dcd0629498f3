package output

import (
	"github.com/fatih/color"

	"github.com/wesleyorama2/jsonreq/internal/http"
)

// palette is what the text formatter paints with. key colors both header
// names and extracted value names.
type palette struct {
	request  *color.Color
	key      *color.Color
	ok       *color.Color
	redirect *color.Color
	failed   *color.Color
}

func newPalette(noColor bool) *palette {
	p := &palette{
		request:  color.New(color.FgCyan, color.Bold),
		key:      color.New(color.FgYellow),
		ok:       color.New(color.FgGreen, color.Bold),
		redirect: color.New(color.FgYellow, color.Bold),
		failed:   color.New(color.FgRed, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.request, p.key, p.ok, p.redirect, p.failed} {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) status(resp *http.Response) *color.Color {
	switch {
	case resp.IsSuccess():
		return p.ok
	case resp.IsRedirect():
		return p.redirect
	default:
		return p.failed
	}
}

// SuccessIcon returns a check mark, green unless noColor is set
func SuccessIcon(noColor bool) string { return icon("✓", color.FgGreen, noColor) }

// ErrorIcon returns a cross, red unless noColor is set
func ErrorIcon(noColor bool) string { return icon("✗", color.FgRed, noColor) }

func icon(symbol string, fg color.Attribute, noColor bool) string {
	if noColor {
		return symbol
	}
	return color.New(fg).Sprint(symbol)
}
