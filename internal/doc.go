// Package internal contains the implementation packages for pasrc, the
// pack/unpack conversion tool.
//
// # Package Organization
//
//   - pathcodec: filename escaping and relative-path arithmetic
//   - assets: asset table and asset-filename stabilization
//   - irsplit: the split/combine transform between raw control trees and IR
//   - entropy: the side channel for non-semantic, preserved-on-repack data
//   - sourcelayout: the on-disk source tree shape
//   - pkgio: the ZIP-backed package loader and writer
//   - diagnostics: the structured error/warning container
//   - model: the shared Document, IR, and raw-PKG-JSON types
//   - templatestore: the control-template registry
//   - editorstate: the editor-state sidecar store
//   - padsl: the textual IR codec
//   - config: layered CLI configuration
//   - logging: the structured-logging facade
package internal
