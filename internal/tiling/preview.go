package tiling

import "strings"

// RenderASCII draws the leaves of root onto a width x height character
// canvas. label names each leaf; an empty label leaves the tile blank.
func RenderASCII(root Node, label func(Node) string, width, height int) []string {
	if width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// Lay out on a virtual surface twice the canvas resolution.
	surface := Rect{Width: width * 2, Height: height * 2}
	for _, leaf := range Leaves(root, surface) {
		text := ""
		if label != nil {
			text = label(leaf.Node)
		}
		drawTile(canvas, leaf.Rect, text, surface.Width, surface.Height, width, height)
	}

	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawTile(canvas [][]rune, rect Rect, text string, surfW, surfH, canvasW, canvasH int) {
	x1 := rect.X * canvasW / surfW
	y1 := rect.Y * canvasH / surfH
	x2 := (rect.X + rect.Width) * canvasW / surfW
	y2 := (rect.Y + rect.Height) * canvasH / surfH

	if x1 < 1 {
		x1 = 1
	}
	if y1 < 1 {
		y1 = 1
	}
	if x2 >= canvasW-1 {
		x2 = canvasW - 2
	}
	if y2 >= canvasH-1 {
		y2 = canvasH - 2
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}
	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	centerY := (y1 + y2) / 2
	centerX := (x1 + x2) / 2
	if text == "" || centerY <= y1 || centerY >= y2 {
		return
	}
	runes := []rune(text)
	if inner := x2 - x1 - 1; len(runes) > inner {
		runes = runes[:max(inner, 0)]
	}
	startX := centerX - len(runes)/2
	for i, r := range runes {
		if x := startX + i; x > x1 && x < x2 {
			canvas[centerY][x] = r
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = blank
	}
	return lines
}
