// Package voronoi renders discrete Voronoi diagrams by brute force.
//
// # Overview
//
// Every pixel is colored with the color of its nearest seed, measured by
// Euclidean distance in UV space. There is no acceleration structure:
// each pixel scans all active seeds, and the work is spread across many
// independent per-pixel evaluations instead.
//
// # Quick Start
//
//	gen, _ := voronoi.NewGenerator(rand.New(rand.NewPCG(1, 2)), voronoi.DefaultCapacity)
//	set := gen.Generate(500)
//
//	buf, err := voronoi.Pack(set, voronoi.DefaultCapacity)
//	if err != nil {
//	    return err
//	}
//
//	r := voronoi.NewRenderer()
//	defer r.Close()
//
//	img, err := r.Render(buf, set.ActiveCount(), voronoi.Resolution{Width: 800, Height: 600})
//	if err != nil {
//	    return err
//	}
//	return img.Save("diagram.png")
//
// # Pipeline
//
//   - Generator draws seed positions and colors from an injected source.
//   - Pack serializes seeds into a PackedBuffer: two blocks of 16-byte
//     records, positions then colors, sized for the full capacity.
//   - Resolution, PixelToUV and QuadTransform map the full-screen quad and
//     each pixel into the space seeds live in.
//   - Evaluator finds the nearest seed for one UV point. Ties go to the
//     lowest index.
//   - Renderer runs the evaluator once per pixel covered by the quad.
//
// The GPU renderer in internal/gpu consumes the same PackedBuffer bytes
// and quad geometry and implements the evaluator as a fragment shader.
//
// # Coordinate System
//
// UV space is [0, 1] x [0, 1] with the origin at the bottom-left of the
// viewport. Pixmap rows are stored top to bottom, so row r has fragment
// y coordinate height - r - 0.5.
//
// Distances are not aspect corrected: on a non-square viewport a UV
// circle is an ellipse on screen. The quad is projected with
// [-aspect, aspect] x [-1, 1] extents, so on a wide viewport it covers
// only the centred square and the side bands keep the clear color.
package voronoi
