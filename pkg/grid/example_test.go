package grid_test

import (
	"fmt"

	"github.com/matzehuels/asciiforge/pkg/grid"
)

func ExampleRectangle() {
	fmt.Println(grid.Rectangle(5, 3, '*', false))
	// Output:
	// *****
	// *   *
	// *****
}

func ExampleGrid_Overlay() {
	canvas := grid.Rectangle(7, 3, '#', false)
	canvas.Overlay(grid.Parse("o o"), 1, 2)
	fmt.Println(canvas)
	// Output:
	// #######
	// # o o #
	// #######
}

func ExampleGrid_Rotate() {
	g, err := grid.Parse("ab\ncd\nef").Rotate(90)
	if err != nil {
		panic(err)
	}
	fmt.Println(g)
	// Output:
	// eca
	// fdb
}

func ExampleGrid_Rows() {
	for ev := range grid.Parse("ab\ncd").Rows() {
		if ev.Done {
			fmt.Println("done")
			break
		}
		fmt.Println(ev.Row, ev.Line)
	}
	// Output:
	// 0 ab
	// 1 cd
	// done
}
