package optimiser

// childScore is one child's contribution to a weighted rollup.
type childScore struct {
	score  float64
	weight float64
	valid  bool
}

// rollup computes the shared aggregation used at every level of the tree:
// sum(score*weight) / sum(weight of children with a valid result). Children
// that hard-failed are excluded from the denominator entirely so they neither
// help nor hurt; a soft failure still contributes its computed score. With no
// valid children the rollup is 0.
func rollup(children []childScore) float64 {
	var sum, weightSum float64
	for _, c := range children {
		if !c.valid {
			continue
		}
		sum += c.score * c.weight
		weightSum += c.weight
	}
	if weightSum == 0 {
		return 0
	}
	return Clamp(sum / weightSum)
}
