// Package economy defines the upgrade catalog and applies purchases to the
// player's stat block.
package economy

import (
	"math"

	"github.com/opd-ai/crystal-raiders/pkg/entity"
	"github.com/opd-ai/crystal-raiders/pkg/run"
)

// Kind tags the effect an upgrade has.
type Kind int

// Upgrade effect kinds.
const (
	ScaleSpeed     Kind = iota // speed *= Factor
	ScaleFireRate              // fireRate = max(Limit, fireRate*Factor)
	ScaleDamage                // damage *= Factor
	AddMultiShot               // multiShot = min(multiShot+Step, Limit)
	ScaleRegen                 // regenRate *= Factor
	ScaleMaxHealth             // maxHealth *= Factor, full heal
	ScaleSpread                // spread = max(Limit, spread*Factor)
)

// Upgrade is one shop item.
type Upgrade struct {
	ID          string
	Title       string
	Description string
	Cost        float64
	Kind        Kind
	Factor      float64
	Step        int
	Limit       float64
}

// Catalog is the fixed list of shop items in display order.
var Catalog = []Upgrade{
	{ID: "speed", Title: "Velocity Boots", Description: "Increase movement speed by 12%.", Cost: 120, Kind: ScaleSpeed, Factor: 1.12},
	{ID: "firerate", Title: "Rapid Core", Description: "Reduce fire cooldown by 15%.", Cost: 150, Kind: ScaleFireRate, Factor: 0.85, Limit: 0.08},
	{ID: "damage", Title: "Crystal Lenses", Description: "Increase projectile damage by 20%.", Cost: 180, Kind: ScaleDamage, Factor: 1.2},
	{ID: "multishot", Title: "Refraction Matrix", Description: "Adds +1 projectile per shot.", Cost: 220, Kind: AddMultiShot, Step: 1, Limit: 5},
	{ID: "regen", Title: "Nano Medkit", Description: "Doubles passive health regeneration.", Cost: 160, Kind: ScaleRegen, Factor: 2},
	{ID: "maxhealth", Title: "Crystal Armor", Description: "Increase maximum health by 25%. Fully heals.", Cost: 190, Kind: ScaleMaxHealth, Factor: 1.25},
	{ID: "spread", Title: "Gyro Stabilizer", Description: "Tightens projectile spread for better accuracy.", Cost: 110, Kind: ScaleSpread, Factor: 0.75, Limit: 0.05},
}

// Lookup returns the catalog entry with the given id.
func Lookup(id string) (Upgrade, bool) {
	for _, u := range Catalog {
		if u.ID == id {
			return u, true
		}
	}
	return Upgrade{}, false
}

// Apply returns stats with the upgrade's effect applied. It does not modify
// its input.
func Apply(u Upgrade, stats entity.PlayerStats) entity.PlayerStats {
	switch u.Kind {
	case ScaleSpeed:
		stats.Speed *= u.Factor
	case ScaleFireRate:
		stats.FireRate = math.Max(u.Limit, stats.FireRate*u.Factor)
	case ScaleDamage:
		stats.Damage *= u.Factor
	case AddMultiShot:
		stats.MultiShot = min(stats.MultiShot+u.Step, int(u.Limit))
	case ScaleRegen:
		stats.RegenRate *= u.Factor
	case ScaleMaxHealth:
		stats.MaxHealth *= u.Factor
		stats.Health = stats.MaxHealth
	case ScaleSpread:
		stats.ProjectileSpread = math.Max(u.Limit, stats.ProjectileSpread*u.Factor)
	}
	return stats
}

// Result reports the outcome of a purchase attempt.
type Result struct {
	Success          bool
	CreditsRemaining float64
}

// Purchase buys u for player if the run can afford it. On failure neither
// the credits nor the player change.
func Purchase(u Upgrade, st *run.State, player *entity.Player) Result {
	if !st.Spend(u.Cost) {
		return Result{Success: false, CreditsRemaining: st.Credits}
	}
	player.PlayerStats = Apply(u, player.PlayerStats)
	return Result{Success: true, CreditsRemaining: st.Credits}
}

// Offer is a catalog entry with its affordability at the current balance.
type Offer struct {
	Upgrade
	Affordable bool
}

// Offers lists the catalog, flagging what credits can buy.
func Offers(credits float64) []Offer {
	offers := make([]Offer, len(Catalog))
	for i, u := range Catalog {
		offers[i] = Offer{Upgrade: u, Affordable: credits >= u.Cost}
	}
	return offers
}
