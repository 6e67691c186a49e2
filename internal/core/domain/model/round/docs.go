// Package round holds the Round aggregate: a courier's delivery run for one
// day, its kind (individual or company trip) and its status lifecycle.
//
// The status of a round drives the status of the shipments it carries. After
// a round changes status the application layer asks Status.ShipmentCascade
// for the shipment status to propagate:
//
//	completed   -> delivered
//	in-progress -> in-transit
//	assigned    -> assigned-to-round
//
// Rounds never hold their stops. Stops are stored and reordered on their own
// (see package stop) while the round row serves as the lock that serializes
// writers.
package round
