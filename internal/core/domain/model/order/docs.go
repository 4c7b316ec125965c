// Package order holds the Order aggregate and its lifecycle state machine.
//
// An order is placed pending by a customer, accepted by exactly one driver of the same region,
// driven by that driver through on_the_way, picked_up and in_progress, and finally completed.
// A customer may cancel while the order is pending and the assigned driver may cancel before
// pickup or while in progress. Completed and cancelled are terminal.
//
// Every change raises a domain event (order.created, order.status.updated) which the unit of work
// publishes after commit.
package order
