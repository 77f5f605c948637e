// Package services provides the pure domain services of the fulfillment core.
// Nothing in this package performs I/O.
//
// The package includes:
//   - LifecycleEngine: decides status changes (strict table or force mode), computes
//     their side effects and answers the driver eligibility predicate
//   - CandidateRanker: filters drivers down to assignable, online candidates and orders
//     them by the configured RankingPolicy
//
// Application handlers load aggregates, ask these services for a decision and translate
// negative answers into errs domain errors.
package services
