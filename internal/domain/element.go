package domain

// Element represents one of the four classical elements.
type Element string

const (
	ElementFire  Element = "Fire"
	ElementWater Element = "Water"
	ElementEarth Element = "Earth"
	ElementAir   Element = "Air"
)

// Elements lists all elements in dominant-axis tie-break priority order:
// Fire > Water > Earth > Air.
var Elements = []Element{ElementFire, ElementWater, ElementEarth, ElementAir}

// String returns the string representation of Element.
func (e Element) String() string {
	return string(e)
}

// IsValid checks if the element is a known value.
func (e Element) IsValid() bool {
	switch e {
	case ElementFire, ElementWater, ElementEarth, ElementAir:
		return true
	}
	return false
}

// ElementalProperties holds raw (non-normalized) elemental intensities.
// Each axis is >= 0 and unbounded; the sum is a meaningful total intensity
// and is never forced to 1.0.
type ElementalProperties struct {
	Fire  float64
	Water float64
	Earth float64
	Air   float64
}

// Get returns the value of the given axis.
func (p ElementalProperties) Get(e Element) float64 {
	switch e {
	case ElementFire:
		return p.Fire
	case ElementWater:
		return p.Water
	case ElementEarth:
		return p.Earth
	case ElementAir:
		return p.Air
	}
	return 0
}

// Add returns the axis-wise sum of two elemental profiles.
func (p ElementalProperties) Add(o ElementalProperties) ElementalProperties {
	return ElementalProperties{
		Fire:  p.Fire + o.Fire,
		Water: p.Water + o.Water,
		Earth: p.Earth + o.Earth,
		Air:   p.Air + o.Air,
	}
}

// Scale returns the profile with every axis multiplied by k.
func (p ElementalProperties) Scale(k float64) ElementalProperties {
	return ElementalProperties{
		Fire:  p.Fire * k,
		Water: p.Water * k,
		Earth: p.Earth * k,
		Air:   p.Air * k,
	}
}

// Total returns the sum of all four axes.
func (p ElementalProperties) Total() float64 {
	return p.Fire + p.Water + p.Earth + p.Air
}

// Dominant returns the axis of maximum raw value. Ties break by fixed
// priority Fire > Water > Earth > Air.
func (p ElementalProperties) Dominant() Element {
	dominant := ElementFire
	best := p.Fire
	for _, e := range Elements[1:] {
		if v := p.Get(e); v > best {
			dominant, best = e, v
		}
	}
	return dominant
}
