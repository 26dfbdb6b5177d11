// Package viz renders the particle field into the terminal.
//
//   - [Canvas]: braille-based pixel canvas, 2x4 dots per cell, with a
//     per-cell color and a text overlay
//   - [Surface]: adapts a Canvas to field.Surface using a pixel size per cell
//   - [Theme]: five built-in color schemes for UI text and field colors
package viz
