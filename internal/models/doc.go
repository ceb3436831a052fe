// Package models provides deterministic compartmental epidemic models.
//
// Each model implements the [epi.System] interface, defining the
// differential equations governing how the population moves between
// compartments:
//
//   - [SIR]: susceptible-infected-recovered, the classic closed epidemic
//   - [SEIR]: adds an exposed (latent) compartment before infectiousness
//   - [SIS]: recovery returns to susceptible (endemic diseases)
//   - [SIRD]: splits removals into recovered and dead
//
// All models are closed: no births, deaths (other than SIRD's explicit
// compartment), or migration, so the compartment sum is conserved along
// any exact solution. Models also implement [epi.Configurable] for
// runtime parameter adjustment.
package models
