package modules

// Drag tracks a single in-flight reorder gesture over a Store:
// Idle, then Dragging(source) after Begin, then Idle again after Drop or End.
// The drop-target highlight is view state only and never touches the list.
type Drag struct {
	store     *Store
	source    int
	dragging  bool
	target    int
	hasTarget bool
}

// NewDrag returns an idle controller for s.
func NewDrag(s *Store) *Drag { return &Drag{store: s} }

// Begin starts dragging the module at i.
func (d *Drag) Begin(i int) {
	d.source, d.dragging = i, true
}

// Over marks j as the current drop target.
func (d *Drag) Over(j int) {
	d.target, d.hasTarget = j, true
}

// Drop finishes the gesture on j. The list changes only when a source is set
// and differs from j. The controller is idle afterwards either way.
func (d *Drag) Drop(j int) bool {
	from, ok := d.source, d.dragging
	d.reset()
	if !ok || from == j {
		return false
	}
	return d.store.Move(from, j)
}

// End cancels the highlight, as on drag end.
func (d *Drag) End() { d.hasTarget = false }

// Leave cancels the highlight, as when the pointer leaves a target.
func (d *Drag) Leave() { d.hasTarget = false }

// Cancel abandons the gesture without moving anything.
func (d *Drag) Cancel() { d.reset() }

// Active reports whether a source is held.
func (d *Drag) Active() bool { return d.dragging }

// Source returns the dragged index.
func (d *Drag) Source() (int, bool) { return d.source, d.dragging }

// Target returns the highlighted index.
func (d *Drag) Target() (int, bool) { return d.target, d.hasTarget }

func (d *Drag) reset() {
	d.source, d.dragging = 0, false
	d.target, d.hasTarget = 0, false
}
