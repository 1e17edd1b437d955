// Package cropper decodes images, decides crop rectangles, and writes the
// cropped result.
//
// Decoding, cropping, and encoding go through github.com/disintegration/imaging
// so EXIF orientation is honoured and the output format follows the output
// file extension. Rectangles are always expressed in pixels of the
// orientation-corrected source. Border detection and aspect constraints are
// pure functions over those rectangles so the terminal UI and the automatic
// selector share them.
package cropper
