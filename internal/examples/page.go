// Package examples renders and writes example pages for components.
package examples

import (
	"strings"

	"github.com/mekor-lib/sampler/pkg/component"
)

// Output file extensions.
const (
	HTMLExt   = ".html"
	ScriptExt = ".js"
)

// bindingSeparator joins input bindings inside the component tag.
const bindingSeparator = "\n\t\t"

// placeholderScript is written next to every page.
const placeholderScript = `
    // JavaScript code to bootstrap the Angular component
    // This part will depend on your specific setup and requirements
  `

// Page is a rendered example.
type Page struct {
	Name   string
	HTML   string
	Script string
}

// Render builds the example page for a component.
// Values are interpolated verbatim, without HTML escaping.
func Render(name string, md *component.Metadata) Page {
	if md == nil {
		md = component.New()
	}

	var b strings.Builder
	b.WriteString("\n<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n")
	b.WriteString("<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("  <title>" + name + " Example</title>\n")
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString("  <" + md.Selector + "\n")
	b.WriteString("    " + strings.Join(Bindings(md), bindingSeparator) + "\n")
	b.WriteString("  >\n")
	b.WriteString("  </" + md.Selector + ">\n")
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")
	b.WriteString("  ")

	return Page{
		Name:   name,
		HTML:   b.String(),
		Script: placeholderScript,
	}
}

// Bindings returns one [name]=default attribute per input, in order.
func Bindings(md *component.Metadata) []string {
	out := make([]string, 0, len(md.Inputs))
	for _, in := range md.Inputs {
		out = append(out, "["+in.Name+"]="+in.DefaultText())
	}
	return out
}
