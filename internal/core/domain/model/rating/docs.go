// Package rating holds the customer rating given to the driver of a completed order.
package rating
