package model

// Table shapes. The shape fixes the footprint used for overlap checks.
const (
	ShapeSquare     = "square"
	ShapeCircle     = "circle"
	ShapeVertical   = "vertical"
	ShapeHorizontal = "horizontal"
)

const (
	defaultFootprintWidth  = 80
	defaultFootprintHeight = 80
)

var footprints = map[string][2]int{
	ShapeSquare:     {80, 80},
	ShapeCircle:     {80, 80},
	ShapeVertical:   {40, 120},
	ShapeHorizontal: {120, 40},
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Footprint returns the bounding rectangle of a table, centered at its
// (x, y) position with dimensions fixed by its shape.
func (t Table) Footprint() Rect {
	size, ok := footprints[t.Shape]
	if !ok {
		size = [2]int{defaultFootprintWidth, defaultFootprintHeight}
	}

	width, height := size[0], size[1]

	return Rect{
		Left:   t.X - width/2,
		Top:    t.Y - height/2,
		Right:  t.X + width/2,
		Bottom: t.Y + height/2,
	}
}

// Overlaps reports whether two rectangles intersect. Touching edges do
// not count as an overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.Left < other.Right && r.Right > other.Left &&
		r.Top < other.Bottom && r.Bottom > other.Top
}

// FindOverlap returns the ids of the first pair of tables whose
// footprints overlap, or (0, 0, false) when the layout is valid.
func FindOverlap(tables Tables) (int, int, bool) {
	for i := range tables {
		for j := i + 1; j < len(tables); j++ {
			if tables[i].Footprint().Overlaps(tables[j].Footprint()) {
				return tables[i].ID, tables[j].ID, true
			}
		}
	}

	return 0, 0, false
}
