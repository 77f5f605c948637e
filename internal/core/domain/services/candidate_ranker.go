package services

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/pkg/errs"
)

// RankingPolicy selects how assignment candidates are ordered.
type RankingPolicy string

const (
	// RankByLoad orders by active-order count ascending, ties broken by name.
	RankByLoad RankingPolicy = "load"
	// RankByName orders alphabetically by name.
	RankByName RankingPolicy = "name"
)

// ParseRankingPolicy accepts "load" or "name" in any casing. An empty value selects
// RankByLoad.
func ParseRankingPolicy(s string) (RankingPolicy, error) {
	switch p := RankingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return RankByLoad, nil
	case RankByLoad, RankByName:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("ranking policy", fmt.Errorf("%q is not one of load, name", s))
	}
}

// Candidate is a driver together with its read-time load.
type Candidate struct {
	Driver *driver.Driver
	// ActiveOrderCount is the number of live orders assigned to the driver whose
	// status is PICKING, PICKED or OUT_FOR_DELIVERY.
	ActiveOrderCount int
}

// CandidateRanker filters and orders drivers for the admin assignment screen.
//
// A candidate must pass LifecycleEngine.IsAssignmentEligible and be online. The
// online flag is read from whatever the caller loaded, so callers must pass freshly
// read drivers.
type CandidateRanker struct {
	engine LifecycleEngine
	policy RankingPolicy
}

// NewCandidateRanker creates a ranker with the given policy.
func NewCandidateRanker(engine LifecycleEngine, policy RankingPolicy) (CandidateRanker, error) {
	if policy != RankByLoad && policy != RankByName {
		return CandidateRanker{}, errs.NewValueIsInvalidErrorWithCause("ranking policy", fmt.Errorf("%q is not supported", string(policy)))
	}
	return CandidateRanker{engine: engine, policy: policy}, nil
}

// Policy returns the configured ranking policy.
func (r CandidateRanker) Policy() RankingPolicy {
	return r.policy
}

// Rank drops ineligible or offline drivers and orders the rest by the configured
// policy. The driver id is the final tiebreak so the output is deterministic.
// The input slice is not modified.
func (r CandidateRanker) Rank(candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !r.engine.IsAssignmentEligible(c.Driver) || !c.Driver.IsOnline() {
			continue
		}
		out = append(out, c)
	}

	byName := func(a, b Candidate) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Driver.Name()), strings.ToLower(b.Driver.Name())),
			cmp.Compare(a.Driver.ID().String(), b.Driver.ID().String()),
		)
	}

	switch r.policy {
	case RankByName:
		slices.SortFunc(out, byName)
	default:
		slices.SortFunc(out, func(a, b Candidate) int {
			return cmp.Or(cmp.Compare(a.ActiveOrderCount, b.ActiveOrderCount), byName(a, b))
		})
	}
	return out
}
