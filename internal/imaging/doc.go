// Package imaging prepares reference images for the generation API.
//
// The remote service only accepts reference images as URLs or base64 data
// URIs. References naming a local file (a file:// URL or an absolute path to
// an existing file) are decoded, optionally downscaled, and re-encoded as a
// data URI. Every other reference is passed through untouched.
//
// Supported source formats are those decoded by disintegration/imaging: PNG,
// JPEG, GIF, TIFF and BMP. JPEG sources stay JPEG; all others are sent as PNG.
package imaging
