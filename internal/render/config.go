package render

import "image/color"

// Fixed label styling and the colors surfaces start from.
var (
	LabelFont  = Font{Size: 14, Bold: true}
	LabelColor = color.Black

	// Background is what targets clear to before each frame.
	Background = color.White

	// Initial paint state of a fresh surface.
	DefaultFill   = color.Black
	DefaultStroke = color.Black
	DefaultFont   = Font{Size: 10}
)
