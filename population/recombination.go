package population

// recombine fills each child slot [mu, popSize) from a parent chosen by the
// active recombination mode (spec §4.5 step 2).
func (p *Population) recombine() {
	weights := p.parentWeights()
	for c := p.mu; c < len(p.individuals); c++ {
		parentIdx := p.pickParent(weights)
		parent := p.individuals[parentIdx]
		child := p.individuals[c]
		child.LoadFrom(parent)
		child.Personality.ParentID = parentIdx
		child.Personality.IsParent = false
	}
}

// parentWeights returns the rank-weighted probability vector for
// value-based recombination, or nil when the mode is random or the fallback
// conditions of spec §4.5 apply ("For iteration 0 and whenever parents lack
// valid (non-dirty) fitness, this mode falls back to Random").
func (p *Population) parentWeights() []float64 {
	if p.recombinationMode != RecombinationValue {
		return nil
	}
	if p.iteration == 0 {
		return nil
	}
	for i := 0; i < p.mu; i++ {
		if p.individuals[i].Dirty() {
			return nil
		}
	}
	weights := make([]float64, p.mu)
	sum := 0.0
	for i := 0; i < p.mu; i++ {
		weights[i] = 1.0 / float64(i+2)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// pickParent returns a parent index in [0, mu). weights == nil means
// uniform (spec §4.5 "Default / Random").
func (p *Population) pickParent(weights []float64) int {
	if weights == nil {
		return p.rng.IntN(p.mu)
	}
	r := p.rng.Float64()
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r < cum {
			return i
		}
	}
	return p.mu - 1
}

// adaptChildren mutates every child's parameters in place and marks it
// dirty; parents are never adapted (spec §4.5 step 3).
func (p *Population) adaptChildren() {
	for c := p.mu; c < len(p.individuals); c++ {
		p.individuals[c].Adapt(p.rng)
	}
}
