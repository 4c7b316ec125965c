// Package earning is the driver earnings ledger: one credited row per completed order
// and the calendar windows used to summarise it.
package earning
