// Package frame parses raw device-export recordings into a uniform table
// with a fixed, enumerated column schema.
//
// A raw export starts with zero or more metadata lines prefixed "Device ",
// followed by one label row and tab-separated data rows. The label row is
// always replaced by the canonical header; the file's own labels are
// never trusted.
package frame
