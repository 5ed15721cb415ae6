// Package render draws aggregate tables and summaries: SVG charts for the
// web dashboard and chart export, and text, markdown and card layouts for
// the terminal.
package render
