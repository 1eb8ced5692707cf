// Package kernel holds the shared value objects of the marketplace domain.
//
// The package includes:
//   - UUID: identifier used by every aggregate (users, products, orders, deliveries)
//   - GeoPoint: latitude/longitude pair for order destinations and driver positions
//   - Money: non-negative decimal amount with two fraction digits
//
// All types are immutable values. Their zero values are invalid and fail Validate,
// so they must be built with the constructors.
package kernel
