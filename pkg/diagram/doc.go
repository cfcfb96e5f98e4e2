// Package diagram turns declarative documents into positioned layers.
//
// A document lists layers, then alignments applied in order, then
// connections. In TOML:
//
//	title = "Q-network"
//
//	[[layers]]
//	name = "state"
//	rows = 1
//	columns = 1
//	special = "input"
//
//	[[layers]]
//	name = "h1"
//	rows = 12
//	columns = 1
//	activation = "sigmoid"
//	draw = "rect"
//
//	[[align]]
//	kind = "vertical"
//	from = "state"
//	to = "h1"
//
//	[[connect]]
//	from = "state"
//	to = "h1"
//
// YAML and JSON use the same keys. [Load] picks the format from the file
// extension; [Build] validates the document and positions its layers, and
// [Diagram.Draw] paints the result on any [render.Surface].
package diagram
