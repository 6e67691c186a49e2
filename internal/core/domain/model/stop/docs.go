// Package stop models the places a courier visits during a round.
//
// A round's stops form a sequence ordered by OrderIndex. The sequence is
// valid when the indices are exactly 0..N-1, the company pickup (if any) is
// first and no shipment is delivered twice. ValidateSequence checks that and
// is run after every reorder before it is committed.
package stop
