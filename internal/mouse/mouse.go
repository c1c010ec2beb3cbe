// Package mouse provides cell-based hit testing for rendered regions.
package mouse

// Rect is a screen region in terminal cells. X/Y are inclusive, the right and
// bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) falls inside the rect.
func (r Rect) Contains(x, y int) bool {
	if r.W <= 0 || r.H <= 0 {
		return false
	}
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named rect registered on a HitMap.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap resolves cells to the topmost registered region.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region. Later regions sit above earlier ones.
func (h *HitMap) Add(id string, rect Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: rect, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// Clear drops every registered region.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Len returns the number of registered regions.
func (h *HitMap) Len() int {
	return len(h.regions)
}
