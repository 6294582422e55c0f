package mapmodel

import "github.com/citysim/engine/geom"

// HeightMap is a regular grid of terrain heights underlying the map; roads
// and buildings sit atop it but terraforming never touches them directly
// (spec §4.1 terraform).
type HeightMap struct {
	CellSize   float64
	Width, Height int // grid dimensions in cells
	Origin     geom.Vec2
	heights    []float64
}

// NewHeightMap allocates a flat grid at the given base elevation.
func NewHeightMap(width, height int, cellSize, base float64, origin geom.Vec2) *HeightMap {
	h := &HeightMap{CellSize: cellSize, Width: width, Height: height, Origin: origin}
	h.heights = make([]float64, width*height)
	for i := range h.heights {
		h.heights[i] = base
	}
	return h
}

func (h *HeightMap) index(cx, cy int) (int, bool) {
	if cx < 0 || cy < 0 || cx >= h.Width || cy >= h.Height {
		return 0, false
	}
	return cy*h.Width + cx, true
}

func (h *HeightMap) cellOf(p geom.Vec2) (int, int) {
	rel := p.Sub(h.Origin)
	return int(rel.X / h.CellSize), int(rel.Y / h.CellSize)
}

// HeightAt returns the height of the grid cell containing a ground-plane
// point (no interpolation between cells), or 0 if out of bounds.
func (h *HeightMap) HeightAt(p geom.Vec2) float64 {
	cx, cy := h.cellOf(p)
	idx, ok := h.index(cx, cy)
	if !ok {
		return 0
	}
	return h.heights[idx]
}

func (h *HeightMap) setHeight(cx, cy int, v float64) {
	idx, ok := h.index(cx, cy)
	if !ok {
		return
	}
	h.heights[idx] = v
}

// TerraformKind selects the kernel applied by Terraform (SPEC_FULL).
type TerraformKind int

const (
	TerraformElevation TerraformKind = iota
	TerraformSmooth
	TerraformLevel
	TerraformSlope
	TerraformErode
)

// Slope parameterizes the TerraformSlope kind: a linear ramp from center
// toward Target.
type Slope struct {
	Target geom.Vec2
	LowZ, HighZ float64
}

// kernel returns a falloff in [0,1] for a point at distance d from the
// terraform center, 1 at the center and 0 at radius.
func kernel(d, radius float64) float64 {
	if radius <= 0 {
		if d == 0 {
			return 1
		}
		return 0
	}
	t := d / radius
	if t > 1 {
		return 0
	}
	return 1 - t*t
}

// Terraform mutates terrain heights under a kernel centered at `center`
// with the given radius/amount/level/kind (spec §4.1). It only ever touches
// the HeightMap, never map objects, so it never needs to reject a
// mutation.
func (m *Map) Terraform(center geom.Vec2, radius, amount, level float64, kind TerraformKind, slope *Slope) {
	if m.terrain == nil {
		return
	}
	h := m.terrain
	cx0, cy0 := h.cellOf(geom.Vec2{X: center.X - radius, Y: center.Y - radius})
	cx1, cy1 := h.cellOf(geom.Vec2{X: center.X + radius, Y: center.Y + radius})

	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			idx, ok := h.index(cx, cy)
			if !ok {
				continue
			}
			p := geom.Vec2{
				X: h.Origin.X + (float64(cx)+0.5)*h.CellSize,
				Y: h.Origin.Y + (float64(cy)+0.5)*h.CellSize,
			}
			d := p.Distance(center)
			if d > radius {
				continue
			}
			w := kernel(d, radius)
			switch kind {
			case TerraformElevation:
				h.heights[idx] += amount * w
			case TerraformSmooth, TerraformErode:
				avg := h.neighborAverage(cx, cy)
				h.heights[idx] += (avg - h.heights[idx]) * w
				if kind == TerraformErode {
					h.heights[idx] -= amount * w * 0.1
				}
			case TerraformLevel:
				step := amount * w
				diff := level - h.heights[idx]
				switch {
				case diff > step:
					h.heights[idx] += step
				case diff < -step:
					h.heights[idx] -= step
				default:
					h.heights[idx] = level
				}
			case TerraformSlope:
				if slope == nil {
					continue
				}
				t := projectOntoSegment(p, center, slope.Target)
				target := slope.LowZ + (slope.HighZ-slope.LowZ)*t
				h.heights[idx] += (target - h.heights[idx]) * w
			}
			_ = idx
		}
	}
}

func (h *HeightMap) neighborAverage(cx, cy int) float64 {
	var sum float64
	var n int
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		idx, ok := h.index(cx+d[0], cy+d[1])
		if !ok {
			continue
		}
		sum += h.heights[idx]
		n++
	}
	if n == 0 {
		return h.heights[cy*h.Width+cx]
	}
	return sum / float64(n)
}

func projectOntoSegment(p, a, b geom.Vec2) float64 {
	dir := b.Sub(a)
	l2 := dir.Len2()
	if l2 < 1e-12 {
		return 0
	}
	t := p.Sub(a).Dot(dir) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t
}
