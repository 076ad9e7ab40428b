package population

import (
	"math"

	"github.com/pa-m/geneva/individual"
)

// selectBest implements spec §4.5 step 6: pick the next generation's
// parents according to the active sorting mode, and leave individuals[0]
// as the best individual (the invariant §3 calls out: "after selectBest,
// individuals[0] is the best non-dirty individual").
func (p *Population) selectBest() {
	switch p.sortingMode {
	case SortComma:
		p.selectComma()
	case SortCommaElitist:
		p.selectCommaElitist()
	default:
		p.selectPlus()
	}
}

// keyOf is a panic-free wrapper around sortKeyOf for use inside sort
// comparators: an individual that is dirty with no evaluation attempted at
// all (the one condition SortKey itself treats as fatal) has already had
// that InvariantViolation raised wherever it was first misused; here we
// fall back to the worst-case key so a stray bug in caller wiring degrades
// to "sorts last" instead of crashing the whole run mid-sort.
func (p *Population) keyOf(ind *individual.Individual) float64 {
	k, err := p.sortKeyOf(ind)
	if err != nil {
		return math.Inf(1)
	}
	return k
}

// selectPlus is μ+λ: the whole population competes (spec §4.5).
func (p *Population) selectPlus() {
	stableSortByKey(p.individuals, p.keyOf)
}

// selectComma is μ,λ: only children compete; parents are unconditionally
// discarded (spec §4.5).
func (p *Population) selectComma() {
	children := p.individuals[p.mu:]
	stableSortByKey(children, p.keyOf)
	p.overwriteParentsWithBestChildren(children)
	stableSortByKey(p.individuals, p.keyOf)
}

// selectCommaElitist is μ,λ with elitism ("μ+1 retention", spec §4.5): if
// the best child beats the best parent of the prior generation, behave like
// plain comma; otherwise keep parent 0 and overwrite parents 1..mu with the
// best μ−1 children. Falls back to selectPlus at iteration 0 or μ=1.
func (p *Population) selectCommaElitist() {
	if p.iteration == 0 || p.mu == 1 {
		p.selectPlus()
		return
	}
	children := p.individuals[p.mu:]
	stableSortByKey(children, p.keyOf)

	bestParentKey := p.keyOf(p.individuals[0])
	bestChildKey := p.keyOf(children[0])
	if bestChildKey < bestParentKey {
		p.overwriteParentsWithBestChildren(children)
	} else {
		p.overwriteParentsKeepingBest(children)
	}
	stableSortByKey(p.individuals, p.keyOf)
}

// overwriteParentsWithBestChildren copies the best mu children into parent
// slots [0, mu).
func (p *Population) overwriteParentsWithBestChildren(sortedChildren []*individual.Individual) {
	parents := p.individuals[:p.mu]
	for i := 0; i < p.mu; i++ {
		parents[i].LoadFrom(sortedChildren[i])
	}
}

// overwriteParentsKeepingBest keeps parent 0 untouched and overwrites
// parents[1:mu] with the best mu-1 children.
func (p *Population) overwriteParentsKeepingBest(sortedChildren []*individual.Individual) {
	for i := 1; i < p.mu; i++ {
		p.individuals[i].LoadFrom(sortedChildren[i-1])
	}
}

// postEvaluate updates best_past_fitness and the stall counter (spec §4.5
// step 5/7) and reports whether this iteration improved on the prior best.
func (p *Population) postEvaluate() bool {
	bestRaw, err := p.individuals[0].Fitness(p.maximize)
	if err != nil {
		bestRaw = worstRaw(p.maximize)
	}
	improved := !p.bestPastValid || betterThan(bestRaw, p.bestPastFitness, p.maximize)
	if improved {
		p.stallCounter = 0
		p.bestPastFitness = bestRaw
		p.bestPastValid = true
	} else {
		p.stallCounter++
	}
	for _, ind := range p.individuals {
		ind.Personality.BestPastFitness = p.bestPastFitness
		ind.Personality.StallCount = p.stallCounter
		ind.Personality.Generation = p.iteration
	}
	return improved
}

func betterThan(a, b float64, maximize bool) bool {
	if maximize {
		return a > b
	}
	return a < b
}

func worstRaw(maximize bool) float64 {
	if maximize {
		return math.Inf(-1)
	}
	return math.Inf(1)
}
