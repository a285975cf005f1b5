// Package catalog contains the dimension/preset catalog: reusable box
// presets and the single ship-from address record. Pure data aggregates
// with no state machine and no external calls.
package catalog
