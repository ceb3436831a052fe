package analysis

// HerdImmunityThreshold is the fraction of the population that must be
// immune to stop growth, 1 - 1/R0. Zero when R0 <= 1: the epidemic cannot
// take off at all.
func HerdImmunityThreshold(r0 float64) float64 {
	if r0 <= 1 {
		return 0
	}
	return 1 - 1/r0
}

// EffectiveR is the instantaneous reproduction number R0*S at the current
// susceptible fraction. The infected curve peaks where this crosses 1.
func EffectiveR(r0, susceptible float64) float64 {
	return r0 * susceptible
}
