// Package status models order lifecycle states as data.
//
// There is no fixed status enumeration. A Status is an entity with a stable
// unique code, display labels, an ordering position, and an optional one-hop
// redirect to another status. The transition relation between statuses is
// deliberately unconstrained; the only enforced invariants are code
// uniqueness (registry level) and that moving an order to its current status
// is a no-op (transition engine level).
package status
