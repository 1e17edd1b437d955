// Package textutil holds small string helpers shared by the scanner and the
// filename resolver: case-folded comparisons and filesystem-safe names.
package textutil
