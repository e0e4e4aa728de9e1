// Package undo implements a transient undo banner for Bubble Tea programs.
//
// A Controller holds the banner state and runs its countdown. An Overlay
// draws the banner over a host model and turns the undo key into
// Controller.Undo. When the countdown runs out, or the host terminates, the
// caller's expire action runs instead of the undo action.
package undo
