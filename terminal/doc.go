// Package terminal connects a tcell screen to the engine.
//
// Input translates tcell mouse and key events into the event vocabulary and
// dispatches them on the bus under the engine lock. Terminals report no key
// release, so every key press yields keydown followed by keyup.
//
// EmergencyReset restores a sane terminal when the screen cannot be finalized.
package terminal
