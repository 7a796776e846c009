// Package viz renders panel views for the terminal.
//
// It owns the color themes shared by the interactive shell and the CLI,
// plots [panels.Chart] values with asciigraph and flattens panel markdown
// into plain text.
//
// # Themes
//
//	cyberpunk  magenta and cyan on black (default)
//	retro      green phosphor
//	minimal    white and grey
//	ocean      blues
//	sunset     coral and gold
package viz
