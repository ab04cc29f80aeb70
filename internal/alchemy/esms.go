package alchemy

import "alchm-engine/internal/domain"

// esmsContributions maps each body to its fixed contribution vector onto
// {Spirit, Essence, Matter, Substance}. The derivation is completely
// independent of elemental values; the two axes combine only downstream.
var esmsContributions = map[domain.Body]domain.AlchemicalProperties{
	domain.BodySun:     {Spirit: 1},
	domain.BodyMoon:    {Essence: 1, Matter: 1},
	domain.BodyMercury: {Spirit: 1, Substance: 1},
	domain.BodyVenus:   {Essence: 1, Matter: 1},
	domain.BodyMars:    {Essence: 1, Matter: 1},
	domain.BodyJupiter: {Spirit: 1, Essence: 1},
	domain.BodySaturn:  {Spirit: 1, Matter: 1},
	domain.BodyUranus:  {Essence: 1, Matter: 1},
	domain.BodyNeptune: {Essence: 1, Substance: 1},
	domain.BodyPluto:   {Essence: 1, Matter: 1},
}

// DeriveESMS accumulates per-body contribution vectors for every resolved
// body in the snapshot. Bodies without a contribution vector (the lunar
// nodes) are skipped.
func DeriveESMS(snapshot *domain.PositionSnapshot) domain.AlchemicalProperties {
	var esms domain.AlchemicalProperties
	if snapshot == nil {
		return esms
	}
	for body := range snapshot.Positions {
		if contribution, ok := esmsContributions[body]; ok {
			esms = esms.Add(contribution)
		}
	}
	return esms
}
