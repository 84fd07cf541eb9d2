package svg

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/layout"
)

type svgDoc struct {
	XMLName xml.Name `xml:"svg"`
	Width   int      `xml:"width,attr"`
	Height  int      `xml:"height,attr"`
	Title   string   `xml:"title"`
	Groups  []struct {
		Rects []struct {
			Fill string `xml:"fill,attr"`
		} `xml:"rect"`
		Texts []string `xml:"text"`
	} `xml:"g"`
}

func TestRenderIsWellFormed(t *testing.T) {
	plan := layout.Pack(1800, 1, true, nil)[0]

	var doc svgDoc
	require.NoError(t, xml.Unmarshal(Render(plan), &doc))

	assert.Equal(t, layout.CanvasWidth, doc.Width)
	assert.Equal(t, layout.CanvasHeight, doc.Height)
	assert.Equal(t, "Ground Floor", doc.Title)
	require.Len(t, doc.Groups, len(plan.Rooms))

	for i, g := range doc.Groups {
		room := plan.Rooms[i]
		require.Len(t, g.Rects, 1+len(room.Doors)+len(room.Windows))
		assert.Equal(t, roomFill, g.Rects[0].Fill)
		assert.Equal(t, room.Name, g.Texts[0])
		assert.Equal(t, room.Dims, g.Texts[1])
	}
}

func TestRenderOpenings(t *testing.T) {
	plan := layout.FloorPlan{
		Floor:  "First Floor",
		Canvas: layout.Canvas{W: 200, H: 100},
		Rooms: []layout.RoomBox{{
			Name: "Kitchen", Dims: "10' x 8'", X: 12, Y: 12, W: 100, H: 60,
			Doors:   []layout.Door{{X: 50, Y: 64, W: 12, H: 8, Side: layout.SideBottom}},
			Windows: []layout.Window{{X: 20, Y: 12, W: 15, H: 6, Side: layout.SideTop}},
		}},
	}

	out := string(Render(plan))
	assert.Contains(t, out, `viewBox="0 0 200 100"`)
	assert.Contains(t, out, `<rect x="50" y="64" width="12" height="8" fill="#8b5a2b"`)
	assert.Contains(t, out, `<text x="56" y="70" font-size="10" fill="#fff" text-anchor="middle" dominant-baseline="middle">D</text>`)
	assert.Contains(t, out, `<rect x="20" y="12" width="15" height="6" fill="#e0f2ff"`)
	assert.Contains(t, out, `<text x="27.5" y="18" font-size="10" fill="#0369a1" text-anchor="middle" dominant-baseline="middle">W</text>`)
	// Label offset is max(6, w/10).
	assert.Contains(t, out, `<text x="22" y="32" font-size="12" fill="#0f172a">Kitchen</text>`)
	assert.Contains(t, out, `10&#39; x 8&#39;`)
}

func TestRenderEscapesNames(t *testing.T) {
	plan := layout.FloorPlan{
		Floor: "<Roof>",
		Rooms: []layout.RoomBox{{Name: "Tom & Jerry's", X: 12, Y: 12, W: 50, H: 50}},
	}

	out := string(Render(plan))
	assert.NotContains(t, out, "<Roof>")
	assert.Contains(t, out, "Tom &amp; Jerry&#39;s")
	// Zero canvas falls back to the default size.
	assert.Contains(t, out, `width="760" height="460"`)

	var doc svgDoc
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
}

func TestRenderDeterministic(t *testing.T) {
	plan := layout.Pack(2700, 2, false, nil)[1]
	assert.Equal(t, Render(plan), Render(plan))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Ground_Floor.svg", Filename("Ground Floor"))
	assert.Equal(t, "Floor_7.svg", Filename("Floor  7"))
	assert.True(t, strings.HasSuffix(Filename(""), ".svg"))
}
