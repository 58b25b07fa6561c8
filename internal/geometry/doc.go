// Package geometry provides the immutable value types used throughout the
// render tree: offsets, sizes, rectangles, edge insets, and 2D affine
// transforms. All operations are pure; none of these types is ever mutated
// in place by the render pipeline.
package geometry
