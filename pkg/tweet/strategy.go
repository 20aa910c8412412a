package tweet

import (
	"context"
	"fmt"
	"time"
)

// strategy names
const (
	StrategyRotation  = "rotation"
	StrategyTimeOfDay = "time_of_day"
)

// Rotation emits a promo template with PromoChance probability, otherwise a uniform pick
// over jokes, observational and sarcasm pools
type Rotation struct {
	Pools       Pools
	PromoChance float64
}

// Name of the strategy
func (r Rotation) Name() string { return StrategyRotation }

// Template picks a template
func (r Rotation) Template(_ context.Context, rnd Rand, _ time.Time) string {
	if len(r.Pools.Promo) > 0 && rnd.Float64() < r.PromoChance {
		return r.Pools.Promo[rnd.IntN(len(r.Pools.Promo))]
	}
	all := make([]string, 0, len(r.Pools.Jokes)+len(r.Pools.Observational)+len(r.Pools.Sarcasm))
	all = append(all, r.Pools.Jokes...)
	all = append(all, r.Pools.Observational...)
	all = append(all, r.Pools.Sarcasm...)
	return pickOr(rnd, all, "")
}

// TimeOfDay picks from the pool of the current UTC part of day joined with the general pool.
// Morning is [6,12), afternoon [12,18), evening otherwise.
type TimeOfDay struct {
	Pools Pools
}

// Name of the strategy
func (t TimeOfDay) Name() string { return StrategyTimeOfDay }

// Template picks a template
func (t TimeOfDay) Template(_ context.Context, rnd Rand, now time.Time) string {
	var pool []string
	switch PartOfDay(now) {
	case "morning":
		pool = t.Pools.Morning
	case "afternoon":
		pool = t.Pools.Afternoon
	default:
		pool = t.Pools.Evening
	}
	all := make([]string, 0, len(pool)+len(t.Pools.General))
	all = append(all, pool...)
	all = append(all, t.Pools.General...)
	return pickOr(rnd, all, "")
}

// PartOfDay returns morning, afternoon or evening for the UTC hour of now
func PartOfDay(now time.Time) string {
	switch h := now.UTC().Hour(); {
	case h >= 6 && h < 12:
		return "morning"
	case h >= 12 && h < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

// NewStrategy makes a template strategy by name
func NewStrategy(name string, pools Pools, promoChance float64) (Strategy, error) {
	switch name {
	case StrategyRotation:
		return Rotation{Pools: pools, PromoChance: promoChance}, nil
	case StrategyTimeOfDay, "":
		return TimeOfDay{Pools: pools}, nil
	default:
		return nil, fmt.Errorf("unknown tweet strategy %q", name)
	}
}
