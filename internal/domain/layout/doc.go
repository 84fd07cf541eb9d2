/*
Package layout derives schematic floor plans from a built-up area.

# Overview

Pack turns a total floor area, a floor count and optional per-room overrides
into one FloorPlan per floor. Every plan uses a fixed 760x460 pixel canvas
with a 12px margin. Rooms are sized from a weighted area split, packed into
rows left to right, squeezed vertically when the rows do not fit, and centred.
Doors and windows are then placed on room walls.

# Guarantees

  - Deterministic: identical inputs produce identical plans.
  - Rooms on a floor never overlap and stay inside the canvas margin.
  - Total: degenerate areas are clamped instead of rejected.

# Usage

	plans := layout.Pack(1800, 2, true, layout.RoomOptions{
		{Key: "bedroom", Option: layout.RoomOption{DoorSide: layout.SideLeft}},
	})
	for _, p := range plans {
		fmt.Println(p.Floor, len(p.Rooms))
	}

Pack holds no state and is safe for concurrent use.
*/
package layout
