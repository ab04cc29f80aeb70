// Package main provides one-shot planetary position resolution for a
// calendar date. Output goes to stdout as a plain table or JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"alchm-engine/internal/alchemy"
	"alchm-engine/internal/domain"
	"alchm-engine/internal/ephemeris"
)

func main() {
	dateStr := flag.String("date", "", "Date to resolve (YYYY-MM-DD, default today UTC)")
	httpEndpoint := flag.String("http-endpoint", os.Getenv("EPHEMERIS_HTTP_ENDPOINT"), "Primary ephemeris HTTP endpoint")
	wsEndpoint := flag.String("ws-endpoint", os.Getenv("EPHEMERIS_WS_ENDPOINT"), "Secondary ephemeris WebSocket endpoint")
	asJSON := flag.Bool("json", false, "Emit JSON instead of a table")
	flag.Parse()

	logger := log.New(os.Stderr, "[resolve] ", log.LstdFlags)

	date := time.Now().UTC()
	if *dateStr != "" {
		parsed, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			logger.Fatalf("invalid --date %q: %v", *dateStr, err)
		}
		date = parsed
	}

	resolver, err := ephemeris.NewResolver(ephemeris.ResolverOptions{
		Sources: buildSources(*httpEndpoint, *wsEndpoint),
		Logger:  logger,
	})
	if err != nil {
		logger.Fatalf("create resolver: %v", err)
	}

	snapshot := resolver.Resolve(context.Background(), date)

	if *asJSON {
		printJSON(snapshot, date)
		return
	}
	printTable(snapshot, date)
}

// buildSources assembles the tier ladder from the configured endpoints.
// Missing endpoints drop their tier; the analytic tier is always present.
func buildSources(httpEndpoint, wsEndpoint string) []ephemeris.PositionSource {
	var sources []ephemeris.PositionSource
	if httpEndpoint != "" {
		sources = append(sources, ephemeris.NewHTTPSource("primary", httpEndpoint))
	}
	if wsEndpoint != "" {
		sources = append(sources, ephemeris.NewWSFeedSource("secondary", wsEndpoint))
	}
	sources = append(sources, ephemeris.NewAnalyticSource())
	return sources
}

func printTable(s *domain.PositionSnapshot, date time.Time) {
	phase, illumination := alchemy.LunarPhaseForDate(date)
	fmt.Printf("Snapshot for %s (tier: %s)\n", s.DateKey, s.Tier)
	fmt.Printf("Season: %s  Day ruler: %s  Lunar phase: %s (%.0f%% illuminated)\n\n",
		alchemy.SeasonForDate(date), alchemy.PlanetaryDayRuler(date), phase, illumination*100)
	fmt.Printf("%-12s %-12s %8s %10s  %s\n", "BODY", "SIGN", "DEGREE", "LONGITUDE", "RETRO")

	bodies := make([]domain.Body, 0, len(s.Positions))
	for b := range s.Positions {
		bodies = append(bodies, b)
	}
	sort.Slice(bodies, func(i, j int) bool { return bodies[i] < bodies[j] })

	for _, b := range bodies {
		p := s.Positions[b]
		retro := ""
		if p.Retrograde {
			retro = "R"
		}
		fmt.Printf("%-12s %-12s %8.3f %10.3f  %s\n", p.Body, p.Sign, p.Degree, p.Longitude, retro)
	}
}

func printJSON(s *domain.PositionSnapshot, date time.Time) {
	type position struct {
		Sign       string  `json:"sign"`
		Degree     float64 `json:"degree"`
		Longitude  float64 `json:"longitude"`
		Retrograde bool    `json:"retrograde"`
	}
	phase, illumination := alchemy.LunarPhaseForDate(date)
	out := struct {
		DateKey      string              `json:"date_key"`
		Tier         string              `json:"tier"`
		Season       string              `json:"season"`
		DayRuler     string              `json:"day_ruler"`
		LunarPhase   string              `json:"lunar_phase"`
		Illumination float64             `json:"illumination"`
		Positions    map[string]position `json:"positions"`
	}{
		DateKey:      s.DateKey,
		Tier:         string(s.Tier),
		Season:       string(alchemy.SeasonForDate(date)),
		DayRuler:     string(alchemy.PlanetaryDayRuler(date)),
		LunarPhase:   string(phase),
		Illumination: illumination,
		Positions:    make(map[string]position, len(s.Positions)),
	}
	for b, p := range s.Positions {
		out.Positions[string(b)] = position{
			Sign:       string(p.Sign),
			Degree:     p.Degree,
			Longitude:  p.Longitude,
			Retrograde: p.Retrograde,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "encode snapshot: %v\n", err)
		os.Exit(1)
	}
}
