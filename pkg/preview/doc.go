// Package preview draws a computed pack layout without touching a board.
//
// [RenderSVG] writes a self-contained SVG with one rectangle per sticky,
// filled with the board's color palette, plus a dashed outline of the
// anchor. [ToDOT] emits the same layout as a Graphviz graph with pinned node
// positions, which [RenderDOT] renders through neato (SVG or PNG).
//
// Positions follow the board convention: a sticky's X and Y are its center.
// Square stickies are as tall as they are wide, rectangles half as tall.
package preview
