package domain

// Body represents a celestial body tracked by the engine.
type Body string

const (
	BodySun       Body = "Sun"
	BodyMoon      Body = "Moon"
	BodyMercury   Body = "Mercury"
	BodyVenus     Body = "Venus"
	BodyMars      Body = "Mars"
	BodyJupiter   Body = "Jupiter"
	BodySaturn    Body = "Saturn"
	BodyUranus    Body = "Uranus"
	BodyNeptune   Body = "Neptune"
	BodyPluto     Body = "Pluto"
	BodyNorthNode Body = "NorthNode"
	BodySouthNode Body = "SouthNode"
)

// Planets lists the ten bodies required in every snapshot, in weight order.
// Nodes are optional snapshot members and are excluded here.
var Planets = []Body{
	BodySun, BodyMoon,
	BodyMercury, BodyVenus, BodyMars,
	BodyJupiter, BodySaturn, BodyUranus, BodyNeptune, BodyPluto,
}

// String returns the string representation of Body.
func (b Body) String() string {
	return string(b)
}

// IsValid checks if the body is a known value.
func (b Body) IsValid() bool {
	switch b {
	case BodySun, BodyMoon, BodyMercury, BodyVenus, BodyMars,
		BodyJupiter, BodySaturn, BodyUranus, BodyNeptune, BodyPluto,
		BodyNorthNode, BodySouthNode:
		return true
	}
	return false
}

// IsLuminary reports whether the body is the Sun or the Moon.
// Luminaries never show retrograde motion.
func (b Body) IsLuminary() bool {
	return b == BodySun || b == BodyMoon
}

// IsNode reports whether the body is a lunar node.
func (b Body) IsNode() bool {
	return b == BodyNorthNode || b == BodySouthNode
}
