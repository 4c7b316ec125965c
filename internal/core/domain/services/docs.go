// Package services contains domain services that do not belong to a single aggregate:
// the OrderMatcher connecting pending orders to drivers and the pluggable FareStrategy.
package services
