package domain

// ZodiacSign represents one of the twelve 30-degree segments of the ecliptic.
type ZodiacSign string

const (
	Aries       ZodiacSign = "Aries"
	Taurus      ZodiacSign = "Taurus"
	Gemini      ZodiacSign = "Gemini"
	Cancer      ZodiacSign = "Cancer"
	Leo         ZodiacSign = "Leo"
	Virgo       ZodiacSign = "Virgo"
	Libra       ZodiacSign = "Libra"
	Scorpio     ZodiacSign = "Scorpio"
	Sagittarius ZodiacSign = "Sagittarius"
	Capricorn   ZodiacSign = "Capricorn"
	Aquarius    ZodiacSign = "Aquarius"
	Pisces      ZodiacSign = "Pisces"
)

// ZodiacSigns lists all signs in ecliptic order, starting at 0° Aries.
var ZodiacSigns = []ZodiacSign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// String returns the string representation of ZodiacSign.
func (z ZodiacSign) String() string {
	return string(z)
}

// IsValid checks if the sign is a known value.
func (z ZodiacSign) IsValid() bool {
	_, ok := signIndex[z]
	return ok
}

// Index returns the 0-based ecliptic index of the sign (Aries = 0).
// Returns -1 for an unknown sign.
func (z ZodiacSign) Index() int {
	idx, ok := signIndex[z]
	if !ok {
		return -1
	}
	return idx
}

// Element returns the classical element assigned to the sign.
func (z ZodiacSign) Element() Element {
	return signElements[z]
}

// SignAtLongitude returns the sign occupying the given absolute ecliptic
// longitude. The longitude is normalized into [0, 360) first.
func SignAtLongitude(longitude float64) ZodiacSign {
	lon := normalizeLongitude(longitude)
	return ZodiacSigns[int(lon/30)%12]
}

func normalizeLongitude(lon float64) float64 {
	lon = lon - 360*float64(int(lon/360))
	if lon < 0 {
		lon += 360
	}
	return lon
}

var signIndex = map[ZodiacSign]int{
	Aries: 0, Taurus: 1, Gemini: 2, Cancer: 3, Leo: 4, Virgo: 5,
	Libra: 6, Scorpio: 7, Sagittarius: 8, Capricorn: 9, Aquarius: 10, Pisces: 11,
}

// signElements maps each sign to its element: Fire, Earth, Air, Water
// repeating in ecliptic order.
var signElements = map[ZodiacSign]Element{
	Aries:       ElementFire,
	Taurus:      ElementEarth,
	Gemini:      ElementAir,
	Cancer:      ElementWater,
	Leo:         ElementFire,
	Virgo:       ElementEarth,
	Libra:       ElementAir,
	Scorpio:     ElementWater,
	Sagittarius: ElementFire,
	Capricorn:   ElementEarth,
	Aquarius:    ElementAir,
	Pisces:      ElementWater,
}
