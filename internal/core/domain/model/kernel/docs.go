// Package kernel provides the primitives shared by every aggregate of the dispatch domain.
//
// The package includes:
//   - UUID: identifier value object with zero-value detection
//   - GeoPoint and DistanceKm: WGS84 coordinates and the Haversine great-circle distance
//   - Role, Actor and Profile: the closed set of actor kinds and the collaborator view of a user
//
// Values are immutable and safe for concurrent use.
package kernel
