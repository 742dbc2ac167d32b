// Package cube provides fixed-size 3D maps backed by a palette.Vector.
//
// Map16 holds a 16x16x16 cube (4096 cells) and Map32 a 32x32x32 cube (32768
// cells). Coordinates are flattened into a linear index with y as the most
// significant axis, then z, then x:
//
//	Index16 = y<<8 | z<<4 | x
//	Index32 = y<<10 | z<<5 | x
//
// Iterating in linear index order therefore visits cells y-outer, z-middle,
// x-inner, which is also the order of the packed storage words.
//
// Out-of-range coordinates are a caller bug and panic.
package cube
