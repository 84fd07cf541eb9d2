// Package svg renders packed floor plans as standalone SVG documents.
package svg

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strconv"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/layout"
)

// Palette used for every drawing.
const (
	roomFill    = "#f8fafc"
	roomStroke  = "#94a3b8"
	nameColor   = "#0f172a"
	dimsColor   = "#475569"
	doorFill    = "#8b5a2b"
	doorStroke  = "#5a3820"
	doorText    = "#fff"
	windowFill  = "#e0f2ff"
	windowStrk  = "#60a5fa"
	windowText  = "#0369a1"
	frameStroke = "#e2e8f0"
)

// ContentType is the media type of Render's output.
const ContentType = "image/svg+xml"

var whitespace = regexp.MustCompile(`\s+`)

// Render draws plan at its canvas size. The output depends only on plan.
func Render(plan layout.FloorPlan) []byte {
	w, h := plan.Canvas.W, plan.Canvas.H
	if w <= 0 {
		w = layout.CanvasWidth
	}
	if h <= 0 {
		h = layout.CanvasHeight
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(plan.Floor))
	fmt.Fprintf(&buf, `  <rect x="0.5" y="0.5" width="%d" height="%d" rx="8" fill="#fff" stroke="%s"/>`+"\n", w-1, h-1, frameStroke)

	for _, room := range plan.Rooms {
		renderRoom(&buf, room)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Filename is the download name for a floor, e.g. "Ground_Floor.svg".
func Filename(floor string) string {
	return whitespace.ReplaceAllString(floor, "_") + ".svg"
}

func renderRoom(buf *bytes.Buffer, r layout.RoomBox) {
	buf.WriteString("  <g class=\"room\">\n")
	fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		r.X, r.Y, r.W, r.H, roomFill, roomStroke)

	labelX := num(float64(r.X) + max(6, float64(r.W)/10))
	fmt.Fprintf(buf, `    <text x="%s" y="%d" font-size="12" fill="%s">%s</text>`+"\n",
		labelX, r.Y+20, nameColor, html.EscapeString(r.Name))
	fmt.Fprintf(buf, `    <text x="%s" y="%d" font-size="11" fill="%s">%s</text>`+"\n",
		labelX, r.Y+36, dimsColor, html.EscapeString(r.Dims))

	for _, d := range r.Doors {
		opening(buf, d.X, d.Y, d.W, d.H, doorFill, doorStroke, doorText, "D")
	}
	for _, win := range r.Windows {
		opening(buf, win.X, win.Y, win.W, win.H, windowFill, windowStrk, windowText, "W")
	}
	buf.WriteString("  </g>\n")
}

func opening(buf *bytes.Buffer, x, y, w, h int, fill, stroke, text, label string) {
	fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		x, y, w, h, fill, stroke)
	fmt.Fprintf(buf, `    <text x="%s" y="%s" font-size="10" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		num(float64(x)+max(6, float64(w)/2)), num(float64(y)+max(6, float64(h)/2)), text, label)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
