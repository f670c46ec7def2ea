// Package game holds the closed vocabulary of the economy: resources,
// buildings, technologies, upgrades and achievements, each a small integer
// enumeration with a static definition table.
//
// String identifiers exist only at the boundary. Parse* functions map them
// onto the enumerations exactly once; everything past that point indexes
// fixed-size arrays, which keeps iteration order deterministic.
package game
