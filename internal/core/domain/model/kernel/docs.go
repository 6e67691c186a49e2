// Package kernel holds the value objects shared by every aggregate of the
// round planning domain:
//   - UUID: identifier of rounds, stops, shipments and companies
//   - Location: a validated latitude/longitude pair with haversine distance
//
// Both are immutable and reject their zero value on Validate.
package kernel
