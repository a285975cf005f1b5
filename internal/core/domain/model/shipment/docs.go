// Package shipment contains the central aggregate of the label orchestration
// engine: the Shipment (one physical parcel of an order), its label lifecycle
// state machine, and the Quote value object used by the rate cache.
//
// The core correctness property lives here: a definitive provider rejection
// transitions a shipment to the failed state, while an ambiguous transport
// failure leaves the state untouched, because the purchase may have succeeded
// on the provider's side even though the response was lost.
package shipment
