package alchemy

import (
	"math"
	"testing"
	"time"

	"alchm-engine/internal/domain"
)

func utcDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestZodiacSignForDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want domain.ZodiacSign
	}{
		{utcDate(2025, time.March, 21), domain.Aries},
		{utcDate(2025, time.April, 19), domain.Aries},
		{utcDate(2025, time.April, 20), domain.Taurus},
		{utcDate(2025, time.June, 21), domain.Cancer},
		{utcDate(2025, time.August, 10), domain.Leo},
		{utcDate(2025, time.November, 22), domain.Sagittarius},
		{utcDate(2025, time.December, 22), domain.Capricorn},
		{utcDate(2025, time.January, 19), domain.Capricorn},
		{utcDate(2025, time.January, 20), domain.Aquarius},
		{utcDate(2025, time.March, 1), domain.Pisces},
	}
	for _, tt := range tests {
		if got := ZodiacSignForDate(tt.date); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.date.Format("2006-01-02"), tt.want, got)
		}
	}
}

func TestSeasonForDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want domain.Season
	}{
		{utcDate(2025, time.April, 10), domain.SeasonSpring},
		{utcDate(2025, time.July, 10), domain.SeasonSummer},
		{utcDate(2025, time.October, 10), domain.SeasonAutumn},
		{utcDate(2025, time.January, 10), domain.SeasonWinter},
	}
	for _, tt := range tests {
		if got := SeasonForDate(tt.date); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.date.Format("2006-01-02"), tt.want, got)
		}
	}
}

func TestLunarPhaseForDate_EpochIsNewMoon(t *testing.T) {
	phase, illumination := LunarPhaseForDate(lunarEpoch)
	if phase != domain.PhaseNewMoon {
		t.Errorf("expected new moon at epoch, got %s", phase)
	}
	if illumination > 0.01 {
		t.Errorf("expected near-zero illumination, got %v", illumination)
	}
}

func TestLunarPhaseForDate_FullMoonAtHalfCycle(t *testing.T) {
	halfCycle := lunarEpoch.Add(time.Duration(synodicPeriodDays / 2 * float64(24*time.Hour)))
	phase, illumination := LunarPhaseForDate(halfCycle)
	if phase != domain.PhaseFullMoon {
		t.Errorf("expected full moon, got %s", phase)
	}
	if illumination < 0.99 {
		t.Errorf("expected near-full illumination, got %v", illumination)
	}
}

func TestLunarPhaseForDate_CycleRepeats(t *testing.T) {
	date := utcDate(2025, time.June, 1)
	next := date.Add(time.Duration(synodicPeriodDays * float64(24*time.Hour)))

	p1, i1 := LunarPhaseForDate(date)
	p2, i2 := LunarPhaseForDate(next)
	if p1 != p2 {
		t.Errorf("phase should repeat after one synodic month: %s vs %s", p1, p2)
	}
	if math.Abs(i1-i2) > 0.01 {
		t.Errorf("illumination should repeat: %v vs %v", i1, i2)
	}
}

func TestLunarPhaseForDate_BeforeEpoch(t *testing.T) {
	phase, illumination := LunarPhaseForDate(utcDate(2020, time.June, 1))
	if !phase.IsValid() {
		t.Errorf("expected a valid phase before the epoch, got %q", phase)
	}
	if illumination < 0 || illumination > 1 {
		t.Errorf("illumination out of range: %v", illumination)
	}
}

func TestPlanetaryDayRuler(t *testing.T) {
	tests := []struct {
		date time.Time
		want domain.Body
	}{
		{utcDate(2025, time.June, 1), domain.BodySun},      // Sunday
		{utcDate(2025, time.June, 2), domain.BodyMoon},     // Monday
		{utcDate(2025, time.June, 3), domain.BodyMars},     // Tuesday
		{utcDate(2025, time.June, 4), domain.BodyMercury},  // Wednesday
		{utcDate(2025, time.June, 5), domain.BodyJupiter},  // Thursday
		{utcDate(2025, time.June, 6), domain.BodyVenus},    // Friday
		{utcDate(2025, time.June, 7), domain.BodySaturn},   // Saturday
	}
	for _, tt := range tests {
		if got := PlanetaryDayRuler(tt.date); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.date.Weekday(), tt.want, got)
		}
	}
}
