// Package chunk stores a column of voxel tiles as sixteen vertically stacked
// sections.
//
// A Section is either void, holding no storage at all, or populated, backed
// by a cube.Map16 of tile states. Most of a world is air, so void sections are
// what keep memory proportional to the interesting part of a chunk. A section
// becomes populated on the first write of a non-void tile and never goes back:
// writing void into a populated section keeps its cube.
//
// A Chunk is sixteen sections plus a world position. Chunk coordinates use y
// in [0, 256); section i covers y in [16*i, 16*i+16).
//
// Coordinates outside the chunk panic. Chunks are not safe for concurrent
// mutation.
package chunk
