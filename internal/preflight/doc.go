// Package preflight verifies that a crop session can read its input folder
// and write its output folder before any image is touched.
package preflight
