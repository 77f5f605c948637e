// Package driver provides the Driver aggregate of the driver directory: the
// fulfillment profile of a delivery driver or pickup helper.
//
// The package includes:
//   - Driver: identity, fulfillment role, verification label and presence
//   - Role: DELIVERY_DRIVER or PICKUP_HELPER
//   - VerificationStatus: opaque onboarding label; only VERIFIED is interpreted
//
// Eligibility for assignment is a lifecycle-engine decision (see package services);
// this package only holds the facts it is decided on.
package driver
