package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/pielabel/pkg/fonts"
	"github.com/matzehuels/pielabel/pkg/geom"
	"github.com/matzehuels/pielabel/pkg/pielabel"
)

// RenderSVG renders the layout, and the pie when given, as an SVG document.
func RenderSVG(l pielabel.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(l.Width), num(l.Height), l.Width, l.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if r.embeddedFont {
		renderFontFace(&buf)
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}
	if r.pie != nil {
		renderPie(&buf, r.pie)
	}

	buf.WriteString(`  <g class="pie-labels">` + "\n")
	for i, d := range l.Labels {
		renderLabel(&buf, i, d)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderFontFace(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <defs><style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style></defs>\n",
		fonts.FontFamily, fonts.RegularTTFBase64())
}

func renderPie(buf *bytes.Buffer, p *Pie) {
	buf.WriteString(`  <g class="pie">` + "\n")
	for _, w := range p.wedges() {
		fmt.Fprintf(buf, `    <path d="%s" fill="%s" fill-rule="evenodd" stroke="#ffffff" stroke-width="1"/>`+"\n",
			wedgePath(p, w), escapeXML(w.color))
	}
	buf.WriteString("  </g>\n")
}

// wedgePath returns the outline of one slice. Whole discs are drawn as two
// half arcs since a single arc cannot close on itself.
func wedgePath(p *Pie, w wedge) string {
	var b strings.Builder
	c, r, ir := p.Center, p.Radius, p.InnerRadius
	if w.whole {
		circle(&b, c, r)
		if ir > 0 {
			circle(&b, c, ir)
		}
		return b.String()
	}

	large := 0
	if w.end-w.start > math.Pi {
		large = 1
	}
	o0, o1 := geom.PointAt(c, w.start, r), geom.PointAt(c, w.end, r)
	if ir > 0 {
		i0, i1 := geom.PointAt(c, w.start, ir), geom.PointAt(c, w.end, ir)
		fmt.Fprintf(&b, "M%s %s A%s %s 0 %d 1 %s %s L%s %s A%s %s 0 %d 0 %s %s Z",
			num(o0.X), num(o0.Y), num(r), num(r), large, num(o1.X), num(o1.Y),
			num(i1.X), num(i1.Y), num(ir), num(ir), large, num(i0.X), num(i0.Y))
		return b.String()
	}
	fmt.Fprintf(&b, "M%s %s L%s %s A%s %s 0 %d 1 %s %s Z",
		num(c.X), num(c.Y), num(o0.X), num(o0.Y), num(r), num(r), large, num(o1.X), num(o1.Y))
	return b.String()
}

func circle(b *strings.Builder, c geom.Point, r float64) {
	fmt.Fprintf(b, "M%s %s A%s %s 0 1 1 %s %s A%s %s 0 1 1 %s %s Z ",
		num(c.X-r), num(c.Y), num(r), num(r), num(c.X+r), num(c.Y),
		num(r), num(r), num(c.X-r), num(c.Y))
}

func renderLabel(buf *bytes.Buffer, i int, d pielabel.DrawnLabel) {
	fmt.Fprintf(buf, `    <g class="pie-label" data-index="%d" data-side="%s">`+"\n", i, d.Side)

	pts := make([]string, len(d.Connector.Points))
	for k, p := range d.Connector.Points {
		pts[k] = num(p.X) + "," + num(p.Y)
	}
	s := d.Connector.Style
	fmt.Fprintf(buf, `      <polyline points="%s" fill="none" stroke="%s" stroke-width="%s"%s/>`+"\n",
		strings.Join(pts, " "), escapeXML(s.Stroke), num(s.Width), dashAttr(s.Dash))

	m := d.Marker
	fmt.Fprintf(buf, `      <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
		num(m.Center.X), num(m.Center.Y), num(m.Style.Radius), escapeXML(m.Style.Fill))

	for _, row := range d.Rows {
		renderRow(buf, row)
	}
	buf.WriteString("    </g>\n")
}

func renderRow(buf *bytes.Buffer, row pielabel.TextRow) {
	anchor := "start"
	if row.Align == pielabel.AlignRight {
		anchor = "end"
	}
	baseline := "text-before-edge"
	if row.Baseline == pielabel.BaselineBottom {
		baseline = "text-after-edge"
	}
	family := row.FontFamily
	if family == "" {
		family = fonts.FallbackFontFamily
	}
	fmt.Fprintf(buf, `      <text x="%s" y="%s" text-anchor="%s" dominant-baseline="%s" font-size="%s" fill="%s" font-family="%s">%s</text>`+"\n",
		num(row.X), num(row.Y), anchor, baseline, num(row.FontSize), escapeXML(row.Fill), escapeXML(family), escapeXML(row.Text))
}

func dashAttr(dash []float64) string {
	if len(dash) == 0 {
		return ""
	}
	parts := make([]string, len(dash))
	for i, d := range dash {
		parts[i] = num(d)
	}
	return fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, " "))
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
