// Package pools provides size-classed slice pooling for scratch buffers.
//
//   - Int32s: triangle id scratch slices used by containment queries
//   - Bytes: decode buffers used when loading mesh snapshots
package pools
