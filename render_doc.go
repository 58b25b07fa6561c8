// Package render implements the layout-and-paint core of a retained render
// tree: render objects negotiate size and position through constraint
// protocols (boxes and slivers), record their output as display lists
// organized into compositing layers, and route input back through
// coordinate-transform hit testing.
//
// The pipeline is driven by a PipelineOwner once per frame: FlushLayout,
// FlushCompositingBits, FlushPaint. Nodes self-register into the owner's
// worklists when marked dirty; each flush visits only dirty nodes in
// ascending tree depth so parents are never reprocessed because of a child
// handled later in the same pass.
package render
