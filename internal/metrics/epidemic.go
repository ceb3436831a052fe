package metrics

import "github.com/san-kum/episim/internal/epi"

// PeakInfection records the largest infected fraction seen and when it
// occurred. idx selects the infected compartment in the state vector.
type PeakInfection struct {
	name     string
	idx      int
	peak     float64
	peakTime float64
	samples  int
}

func NewPeakInfection(idx int) *PeakInfection {
	return &PeakInfection{name: "peak_infection", idx: idx}
}

func (p *PeakInfection) Name() string { return p.name }

func (p *PeakInfection) Observe(x epi.State, t float64) {
	if p.idx >= len(x) {
		return
	}
	p.samples++
	if x[p.idx] > p.peak {
		p.peak = x[p.idx]
		p.peakTime = t
	}
}

func (p *PeakInfection) Value() float64    { return p.peak }
func (p *PeakInfection) PeakTime() float64 { return p.peakTime }

func (p *PeakInfection) Reset() {
	p.peak = 0
	p.peakTime = 0
	p.samples = 0
}

// AttackRate is the cumulative fraction of the initial susceptible pool
// that was ever infected, (S0 - S_end) / S0.
type AttackRate struct {
	name     string
	idx      int
	initialS float64
	finalS   float64
	samples  int
}

func NewAttackRate(susceptibleIdx int) *AttackRate {
	return &AttackRate{name: "attack_rate", idx: susceptibleIdx}
}

func (a *AttackRate) Name() string { return a.name }

func (a *AttackRate) Observe(x epi.State, t float64) {
	if a.idx >= len(x) {
		return
	}
	if a.samples == 0 {
		a.initialS = x[a.idx]
	}
	a.finalS = x[a.idx]
	a.samples++
}

func (a *AttackRate) Value() float64 {
	if a.initialS == 0 {
		return 0
	}
	return (a.initialS - a.finalS) / a.initialS
}

func (a *AttackRate) Reset() {
	a.initialS = 0
	a.finalS = 0
	a.samples = 0
}

// Duration measures how long the infected fraction stays above threshold.
type Duration struct {
	name      string
	idx       int
	threshold float64
	first     float64
	last      float64
	seen      bool
}

func NewDuration(infectedIdx int, threshold float64) *Duration {
	return &Duration{name: "epidemic_duration", idx: infectedIdx, threshold: threshold}
}

func (d *Duration) Name() string { return d.name }

func (d *Duration) Observe(x epi.State, t float64) {
	if d.idx >= len(x) || x[d.idx] < d.threshold {
		return
	}
	if !d.seen {
		d.first = t
		d.seen = true
	}
	d.last = t
}

func (d *Duration) Value() float64 {
	if !d.seen {
		return 0
	}
	return d.last - d.first
}

func (d *Duration) Reset() {
	d.first = 0
	d.last = 0
	d.seen = false
}
