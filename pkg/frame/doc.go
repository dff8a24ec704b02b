// Package frame implements the FilmFrame compositing core.
//
// Given a decoded photograph and an immutable [RenderConfig], the package
// derives the canvas geometry for the selected layout variant, samples a
// small representative palette, and paints every decoration onto a pixel
// buffer in a fixed z-order:
//
//  1. Resize the target surface to the computed canvas
//  2. Background fill with the variant color
//  3. Grain texture (seeded, skipped for cinema-scope)
//  4. Sprocket holes (film-negative only)
//  5. Drop shadow (gallery and instant-film)
//  6. Source image at its natural resolution
//  7. Diffusion filter (blurred, blended second pass)
//  8. Quartz date stamp
//  9. Light leak
//  10. Palette swatches, caption and signature
//
// # Geometry
//
// [ComputeMargins] converts margin percentages into pixels relative to the
// image's long edge, and [ComputeCanvas] applies the per-variant sizing
// rules:
//
//	g := frame.ComputeCanvas(1000, 1500, frame.DefaultConfig())
//	fmt.Println(g.CanvasWidth, g.CanvasHeight, g.DrawX, g.DrawY)
//
// # Rendering
//
// A [Compositor] paints into a [Surface]. The surface is only updated when
// every stage succeeded, so a failed render never leaves a half-drawn
// buffer behind:
//
//	entry, _ := frame.NewEntry(img)
//	surface := frame.NewSurface()
//	if err := frame.NewCompositor(nil).Render(ctx, surface, entry, cfg); err != nil {
//	    return err
//	}
//	out := surface.Image()
//
// Rendering is deterministic: grain noise is drawn from a PCG generator
// seeded with [RenderConfig.Seed], so identical inputs always produce
// byte-identical buffers.
package frame
