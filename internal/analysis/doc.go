// Package analysis derives epidemiological summaries from solved
// trajectories: early exponential growth rate, peak location, and
// threshold quantities implied by the basic reproduction number.
package analysis
