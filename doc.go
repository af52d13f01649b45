// Package popcore is the deterministic, integer-exact core of a
// Populous-style real-time strategy simulation: fixed-point angle math,
// toroidal world coordinates, and the region map that backs walkability
// queries used throughout the movement and unit packages.
package popcore
