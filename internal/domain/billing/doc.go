// Package billing provides domain models for monthly rent billing in a
// multi-unit rental property.
//
// This package implements the billing bounded context, which is responsible for:
//   - Issuing monthly bills that snapshot the room's rent at creation time
//   - Pricing metered water and electricity usage at per-unit rates
//   - Recording settlement exactly once per bill
//
// Key Aggregates:
//   - Bill: A monthly charge for a tenant, combining the rent snapshot with
//     usage-based water and electricity line items
//
// Value Objects:
//   - PaymentRecord: Immutable, append-only evidence that a bill was settled
//
// The billing domain integrates with:
//   - Tenancy domain: For room occupancy and the rent amount snapshotted onto
//     each bill
package billing
