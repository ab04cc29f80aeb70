package alchemy

import (
	"math"
	"time"

	"alchm-engine/internal/domain"
)

// Calendar-derived inputs: zodiac season, meteorological season, lunar
// phase and the Chaldean day ruler. All are deterministic functions of a
// UTC timestamp.

// Synodic month constants anchored at a known new moon.
const (
	synodicPeriodDays = 29.53058867
	secondsPerDay     = 86400
)

// lunarEpoch is a documented new moon: 2023-01-21 20:53 UTC.
var lunarEpoch = time.Date(2023, 1, 21, 20, 53, 0, 0, time.UTC)

// ZodiacSignForDate returns the sign the Sun occupies on the given calendar
// date, from the fixed tropical date ranges.
func ZodiacSignForDate(t time.Time) domain.ZodiacSign {
	t = t.UTC()
	month, day := int(t.Month()), t.Day()
	switch {
	case (month == 3 && day >= 21) || (month == 4 && day <= 19):
		return domain.Aries
	case (month == 4 && day >= 20) || (month == 5 && day <= 20):
		return domain.Taurus
	case (month == 5 && day >= 21) || (month == 6 && day <= 20):
		return domain.Gemini
	case (month == 6 && day >= 21) || (month == 7 && day <= 22):
		return domain.Cancer
	case (month == 7 && day >= 23) || (month == 8 && day <= 22):
		return domain.Leo
	case (month == 8 && day >= 23) || (month == 9 && day <= 22):
		return domain.Virgo
	case (month == 9 && day >= 23) || (month == 10 && day <= 22):
		return domain.Libra
	case (month == 10 && day >= 23) || (month == 11 && day <= 21):
		return domain.Scorpio
	case (month == 11 && day >= 22) || (month == 12 && day <= 21):
		return domain.Sagittarius
	case (month == 12 && day >= 22) || (month == 1 && day <= 19):
		return domain.Capricorn
	case (month == 1 && day >= 20) || (month == 2 && day <= 18):
		return domain.Aquarius
	default:
		return domain.Pisces
	}
}

// SeasonForDate maps the zodiac date ranges onto the four seasons
// (northern hemisphere: Aries season opens Spring).
func SeasonForDate(t time.Time) domain.Season {
	switch ZodiacSignForDate(t) {
	case domain.Aries, domain.Taurus, domain.Gemini:
		return domain.SeasonSpring
	case domain.Cancer, domain.Leo, domain.Virgo:
		return domain.SeasonSummer
	case domain.Libra, domain.Scorpio, domain.Sagittarius:
		return domain.SeasonAutumn
	default:
		return domain.SeasonWinter
	}
}

// LunarPhaseForDate returns the phase name and illumination fraction for
// the given instant, computed from the synodic period since the epoch new
// moon.
func LunarPhaseForDate(t time.Time) (domain.LunarPhase, float64) {
	daysSince := t.UTC().Sub(lunarEpoch).Seconds() / secondsPerDay
	position := math.Mod(daysSince/synodicPeriodDays, 1.0)
	if position < 0 {
		position += 1.0
	}
	illumination := 0.5 * (1 - math.Cos(2*math.Pi*position))

	var phase domain.LunarPhase
	switch {
	case position < 0.03 || position > 0.97:
		phase = domain.PhaseNewMoon
	case position > 0.22 && position < 0.28:
		phase = domain.PhaseFirstQuarter
	case position > 0.47 && position < 0.53:
		phase = domain.PhaseFullMoon
	case position > 0.72 && position < 0.78:
		phase = domain.PhaseLastQuarter
	case position < 0.25:
		phase = domain.PhaseWaxingCrescent
	case position < 0.5:
		phase = domain.PhaseWaxingGibbous
	case position < 0.75:
		phase = domain.PhaseWaningGibbous
	default:
		phase = domain.PhaseWaningCrescent
	}
	return phase, illumination
}

// dayRulers maps time.Weekday (Sunday = 0) to the ruling body, following
// the Chaldean sequence Saturn, Jupiter, Mars, Sun, Venus, Mercury, Moon.
var dayRulers = [7]domain.Body{
	domain.BodySun,     // Sunday
	domain.BodyMoon,    // Monday
	domain.BodyMars,    // Tuesday
	domain.BodyMercury, // Wednesday
	domain.BodyJupiter, // Thursday
	domain.BodyVenus,   // Friday
	domain.BodySaturn,  // Saturday
}

// PlanetaryDayRuler returns the Chaldean ruler of the given date's weekday.
// Hour-level rulership needs a geographic observer for sunrise and is out
// of scope for this engine.
func PlanetaryDayRuler(t time.Time) domain.Body {
	return dayRulers[int(t.UTC().Weekday())]
}
