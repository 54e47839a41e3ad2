// Package models defines the persistent entities for the game
// collection tracker and the remote catalog projections they are
// normalized from.
package models
