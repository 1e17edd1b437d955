// Package session drives one batch crop over an input folder.
//
// A session takes the scanned image list, locks the output folder so two
// runs cannot write into it at once, and visits every image in order. For
// each image it computes a starting rectangle (full frame, detected border,
// or the rectangle used last time), asks a Selector what to do, writes the
// crop through the cropper, and records it in the history store. Failures on
// a single image are logged and counted; only lock, setup, and selector
// errors end the session early.
package session
