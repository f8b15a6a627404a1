package spiro_test

import (
	"fmt"
	"os"

	"honnef.co/go/spiro"
)

func ExampleConvertToBezier() {
	points := []spiro.ControlPoint{
		spiro.CP(-100, 0, spiro.G4),
		spiro.CP(0, 100, spiro.G4),
		spiro.CP(100, 0, spiro.G4),
		spiro.CP(0, -100, spiro.G4),
	}
	d, err := spiro.SVGPath(spiro.SVGOptions{}, func(sink spiro.Sink) error {
		return spiro.ConvertToBezier(points, true, sink)
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(d)
	// Output:
	// M-100,0 C-100.0,26.1799 -89.2227,52.1987 -70.7107,70.7107 C-52.1987,89.2227 -26.1799,100.0 0,100 C26.1799,100.0 52.1987,89.2227 70.7107,70.7107 C89.2227,52.1987 100.0,26.1799 100,0 C100.0,-26.1799 89.2227,-52.1987 70.7107,-70.7107 C52.1987,-89.2227 26.1799,-100.0 0,-100 C-26.1799,-100.0 -52.1987,-89.2227 -70.7107,-70.7107 C-89.2227,-52.1987 -100.0,-26.1799 -100,0 Z
}

func ExampleConvertTaggedToBezier() {
	points := []spiro.ControlPoint{
		// A closed triangle...
		spiro.CP(0, 0, spiro.Corner),
		spiro.CP(10, 0, spiro.Corner),
		spiro.CP(10, 10, spiro.Corner),
		{Type: spiro.End},
		// ...and an open line.
		spiro.CP(20, 0, spiro.OpenContour),
		spiro.CP(30, 10, spiro.EndOpenContour),
	}
	err := spiro.WriteSVGPath(os.Stdout, spiro.SVGOptions{}, func(sink spiro.Sink) error {
		return spiro.ConvertTaggedToBezier(points, sink)
	})
	if err != nil {
		panic(err)
	}
	fmt.Println()
	// Output:
	// M0,0 L10,0 L10,10 L0,0 Z M20,0 L30,10
}

func ExampleSolve() {
	points := []spiro.ControlPoint{
		spiro.CP(-100, 0, spiro.G4),
		spiro.CP(0, 100, spiro.G4),
		spiro.CP(100, 0, spiro.G4),
		spiro.CP(0, -100, spiro.G4),
	}
	sp, err := spiro.Solve(points, true, spiro.Options{})
	if err != nil {
		panic(err)
	}
	for i, seg := range sp.Segments() {
		fmt.Printf("%d: %v → %v, length %.4f, curvature %.4f\n", i, seg.Start, seg.End, seg.Length, seg.K[0])
	}
	// Output:
	// 0: (-100, 0) → (0, 100), length 157.0796, curvature -1.5708
	// 1: (0, 100) → (100, 0), length 157.0796, curvature -1.5708
	// 2: (100, 0) → (0, -100), length 157.0796, curvature -1.5708
	// 3: (0, -100) → (-100, 0), length 157.0796, curvature -1.5708
}

func ExampleRecorder() {
	points := []spiro.ControlPoint{
		spiro.CP(0, 0, spiro.G4),
		spiro.CP(3, 4, spiro.G4),
	}
	var rec spiro.Recorder
	if err := spiro.ConvertToBezier(points, false, &rec); err != nil {
		panic(err)
	}
	for _, in := range rec {
		fmt.Println(in)
	}
	// Output:
	// MoveTo((0, 0), open)
	// MarkKnot(0)
	// LineTo((3, 4))
	// MarkKnot(1)
}

func ExampleTransformSink() {
	points := []spiro.ControlPoint{
		spiro.CP(0, 0, spiro.Corner),
		spiro.CP(10, 0, spiro.Corner),
		spiro.CP(10, 10, spiro.Corner),
	}
	d, err := spiro.SVGPath(spiro.SVGOptions{}, func(sink spiro.Sink) error {
		ts := &spiro.TransformSink{Sink: sink, Transform: spiro.FlipY.ThenScale(2, 2)}
		return spiro.ConvertToBezier(points, true, ts)
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(d)
	// Output:
	// M0,0 L20,0 L20,-20 L0,0 Z
}
