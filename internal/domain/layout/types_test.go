package layout

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{in: "top", want: SideTop},
		{in: " Left ", want: SideLeft},
		{in: "BOTTOM", want: SideBottom},
		{in: "right", want: SideRight},
		{in: "north", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSide(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSide)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, SideBottom, SideTop.Opposite())
	assert.Equal(t, SideTop, SideBottom.Opposite())
	assert.Equal(t, SideRight, SideLeft.Opposite())
	assert.Equal(t, SideLeft, SideRight.Opposite())
}

func TestRoomOptionsKeepDocumentOrder(t *testing.T) {
	var opts RoomOptions
	err := json.Unmarshal([]byte(`{"room":{"door_side":"left"},"bedroom":{"door_side":"top","doors":2}}`), &opts)
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, "room", opts[0].Key)
	assert.Equal(t, "bedroom", opts[1].Key)

	// "room" comes first and also matches bedrooms.
	opt, ok := opts.Match("Master Bedroom")
	require.True(t, ok)
	assert.Equal(t, SideLeft, opt.DoorSide)

	var reversed RoomOptions
	err = json.Unmarshal([]byte(`{"bedroom":{"door_side":"top","doors":2},"room":{"door_side":"left"}}`), &reversed)
	require.NoError(t, err)

	opt, ok = reversed.Match("Master Bedroom")
	require.True(t, ok)
	assert.Equal(t, SideTop, opt.DoorSide)
	require.NotNil(t, opt.Doors)
	assert.Equal(t, 2, *opt.Doors)

	out, err := json.Marshal(reversed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bedroom":{"door_side":"top","doors":2},"room":{"door_side":"left"}}`, string(out))
	assert.Less(t, strings.Index(string(out), "bedroom"), strings.Index(string(out), `"room"`))
}

func TestRoomOptionsUnmarshalErrors(t *testing.T) {
	var opts RoomOptions
	assert.Error(t, json.Unmarshal([]byte(`["bedroom"]`), &opts))
	assert.Error(t, json.Unmarshal([]byte(`{"bedroom":{"doors":"two"}}`), &opts))

	require.NoError(t, json.Unmarshal([]byte(`null`), &opts))
	assert.Nil(t, opts)
}

func TestRoomOptionsMatch(t *testing.T) {
	opts := RoomOptions{
		{Key: "", Option: RoomOption{DoorSide: SideTop}},
		{Key: "BATH", Option: RoomOption{DoorSide: SideLeft}},
	}

	opt, ok := opts.Match("Bathroom 2")
	require.True(t, ok)
	assert.Equal(t, SideLeft, opt.DoorSide)

	_, ok = opts.Match("Kitchen")
	assert.False(t, ok)
}

func TestRoomOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    RoomOptions
		wantErr bool
	}{
		{name: "empty", opts: nil},
		{name: "valid", opts: RoomOptions{{Key: "kitchen", Option: RoomOption{DoorSide: SideTop, Doors: intPtr(2), Windows: intPtr(3), WindowSide: SideLeft}}}},
		{name: "bad door side", opts: RoomOptions{{Key: "kitchen", Option: RoomOption{DoorSide: "up"}}}, wantErr: true},
		{name: "bad window side", opts: RoomOptions{{Key: "kitchen", Option: RoomOption{WindowSide: "down"}}}, wantErr: true},
		{name: "too many doors", opts: RoomOptions{{Key: "kitchen", Option: RoomOption{Doors: intPtr(3)}}}, wantErr: true},
		{name: "negative windows", opts: RoomOptions{{Key: "kitchen", Option: RoomOption{Windows: intPtr(-1)}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLookupSpec(t *testing.T) {
	assert.Equal(t, "master", LookupSpec("Master Bedroom").Keyword)
	assert.Equal(t, "bedroom", LookupSpec("Bedroom 2").Keyword)
	assert.Equal(t, "bathroom", LookupSpec("Bathroom 1").Keyword)

	store := LookupSpec("Store")
	assert.Equal(t, 1.0, store.Weight)
	assert.InDelta(t, 1.15, store.Aspect(), 1e-9)
}

func TestRoomsForReturnsCopy(t *testing.T) {
	rooms := RoomsFor(500)
	rooms[0] = "Garage"
	assert.Equal(t, "Living Room", RoomsFor(500)[0])
}
