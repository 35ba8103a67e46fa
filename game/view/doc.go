// Package view holds the presentation rules shared by the desktop window and
// the text renderers: pixel to cell mapping, window size, cell styling and the
// footer line. It draws nothing itself and has no windowing dependency.
package view
