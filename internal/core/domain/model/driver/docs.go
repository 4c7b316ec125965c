// Package driver models driver availability (available, busy, offline).
package driver
