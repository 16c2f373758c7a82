package agent

import (
	"fmt"
	"math/rand"
)

// Options holds the tunables for any agent kind. Fields irrelevant to a kind are ignored
// and zero values select each kind's defaults.
type Options struct {
	Rules              []Rule
	ExplorationRate    float64
	MinExplorationRate float64
	LearningRate       float64
	DiscountFactor     float64
	Seed               int64
}

// New builds an agent of the given kind. A zero Seed draws a time-based seed.
// Reflex agents without explicit rules get DefaultRules.
func New(kind Kind, name string, opts Options) (Agent, error) {
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	switch kind {
	case KindReflex:
		rules := opts.Rules
		if len(rules) == 0 {
			rules = DefaultRules()
		}
		return NewReflex(name, &ReflexOptions{Rules: rules, Rand: rng}), nil
	case KindModel:
		return NewModelBased(name), nil
	case KindUtility:
		exploration := opts.ExplorationRate
		if exploration == 0 {
			exploration = defaultUtilityExploration
		}
		return NewUtilityBased(name, &UtilityOptions{
			ExplorationRate: exploration,
			DiscountFactor:  opts.DiscountFactor,
			Rand:            rng,
		}), nil
	case KindQLearning:
		return NewQLearning(name, &QLearningOptions{
			LearningRate:       opts.LearningRate,
			DiscountFactor:     opts.DiscountFactor,
			ExplorationRate:    opts.ExplorationRate,
			MinExplorationRate: opts.MinExplorationRate,
			Rand:               rng,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
