// Package docs provides an overview of pasrc, a conversion tool between a
// compiled application package and a human-editable source tree.
//
// # Key Features
//
//   - Byte-faithful unpack/pack round-tripping of a ZIP-based package format
//   - A human-editable textual representation of the control tree
//   - Stable asset and checksum handling across repeated conversions
//
// # Quick Start
//
//	// Unpack a package into a source tree
//	pasrc -unpack app.msapp
//
//	// Pack a source tree back into a package
//	pasrc -pack app.msapp app_src
//
//	// Verify a package round-trips cleanly
//	pasrc -test app.msapp
//
// # Architecture
//
//   - CLI commands (cmd/): Cobra-based command interface
//   - PathCodec (internal/pathcodec/): filename escaping, relative paths
//   - IRSplitCombine (internal/irsplit/): raw control tree <-> IR transform
//   - AssetTable (internal/assets/): asset naming stabilization
//   - SourceLayout (internal/sourcelayout/): on-disk tree shape
//   - PkgLoader/PkgWriter (internal/pkgio/): ZIP wire format
//   - Configuration (internal/config/): Viper-based configuration management
//
// # Configuration
//
// pasrc supports configuration through multiple sources:
//
//   - Configuration file (.pasrc.yml)
//   - Environment variables (PASRC_*)
//   - Command-line flags
package docs
