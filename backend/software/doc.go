// Package software provides a pure Go graphics context for gplot lines.
//
// The context mirrors the object model of a GL-style API: vertex array
// objects with byte storage, a current program, and a single vertex array
// binding point. Every draw is appended to a log together with the
// vertices it consumed, which makes the context suitable for tests and
// headless tooling. An optional Canvas rasterises the draws into an
// *image.RGBA for previews.
//
// The context is registered in the backend registry as "software" and is
// always available:
//
//	ctx := software.New()
//	defer ctx.Close()
//
//	shader := ctx.LineShader()
//	line, _ := gplot.NewPointLine(ctx, pts)
//	_ = line.Draw(shader, gpucore.Identity4())
//
//	for _, d := range ctx.Draws() {
//		fmt.Println(d.Mode, d.Count)
//	}
package software
