package priority

import (
	"errors"
	"fmt"
	"math"
)

// Strategy names a weight profile.
type Strategy string

// Valid strategies
const (
	StrategyFastestWins    Strategy = "fastest_wins"
	StrategyHighImpact     Strategy = "high_impact"
	StrategyDeadlineDriven Strategy = "deadline_driven"
	StrategySmartBalance   Strategy = "smart_balance"
)

// DefaultStrategy is used when no strategy, or an unknown one, is requested.
const DefaultStrategy = StrategySmartBalance

// ErrInvalidWeights is returned by Weights.Validate for negative or
// non-finite components.
var ErrInvalidWeights = errors.New("invalid weights")

// Weights is the relative influence of each score dimension on the aggregate
// priority. Components must be non-negative; they are not required to sum to
// 1, in which case the aggregate may leave [0,1].
type Weights struct {
	Urgency      float64 `json:"urgency"      yaml:"urgency"      mapstructure:"urgency"`
	Importance   float64 `json:"importance"   yaml:"importance"   mapstructure:"importance"`
	Effort       float64 `json:"effort"       yaml:"effort"       mapstructure:"effort"`
	Dependencies float64 `json:"dependencies" yaml:"dependencies" mapstructure:"dependencies"`
}

// Sum returns the total of all four components.
func (w Weights) Sum() float64 {
	return w.Urgency + w.Importance + w.Effort + w.Dependencies
}

// Validate checks that every component is finite and non-negative.
func (w Weights) Validate() error {
	components := []struct {
		name  string
		value float64
	}{
		{"urgency", w.Urgency},
		{"importance", w.Importance},
		{"effort", w.Effort},
		{"dependencies", w.Dependencies},
	}
	for _, c := range components {
		if c.value < 0 || math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s weight %v", ErrInvalidWeights, c.name, c.value)
		}
	}
	return nil
}

// Profile pairs a strategy name with its weights.
type Profile struct {
	Name    Strategy `json:"name"`
	Weights Weights  `json:"weights"`
}

// profiles is ordered for stable listing.
var profiles = []Profile{
	{
		Name:    StrategyFastestWins,
		Weights: Weights{Urgency: 0.20, Importance: 0.20, Effort: 0.50, Dependencies: 0.10},
	},
	{
		Name:    StrategyHighImpact,
		Weights: Weights{Urgency: 0.20, Importance: 0.60, Effort: 0.10, Dependencies: 0.10},
	},
	{
		Name:    StrategyDeadlineDriven,
		Weights: Weights{Urgency: 0.70, Importance: 0.15, Effort: 0.10, Dependencies: 0.05},
	},
	{
		Name:    StrategySmartBalance,
		Weights: Weights{Urgency: 0.35, Importance: 0.30, Effort: 0.20, Dependencies: 0.15},
	},
}

// DefaultWeights returns the smart_balance weights.
func DefaultWeights() Weights {
	return StrategyWeights(string(DefaultStrategy))
}

// StrategyWeights returns the weights for a named strategy. Unknown names
// fall back to smart_balance without error so batch scoring never fails on
// this axis.
func StrategyWeights(name string) Weights {
	_, w := ResolveStrategy(name)
	return w
}

// ResolveStrategy returns the strategy that will actually be applied for
// name along with its weights.
func ResolveStrategy(name string) (Strategy, Weights) {
	for _, p := range profiles {
		if string(p.Name) == name {
			return p.Name, p.Weights
		}
	}
	for _, p := range profiles {
		if p.Name == DefaultStrategy {
			return p.Name, p.Weights
		}
	}
	// unreachable: profiles always contains DefaultStrategy
	return DefaultStrategy, Weights{}
}

// IsKnownStrategy reports whether name is one of the built-in profiles.
func IsKnownStrategy(name string) bool {
	for _, p := range profiles {
		if string(p.Name) == name {
			return true
		}
	}
	return false
}

// Strategies returns a copy of all built-in profiles in display order.
func Strategies() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}
