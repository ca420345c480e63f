// Package model defines the shared data model described in spec §3: the
// Document aggregate, the IR tree, the editor-state sidecar, and the raw PKG
// JSON shapes IRSplitCombine reads and writes. Kept as a single package
// (rather than one package per type) because every subsystem in this
// pipeline touches most of these types together — splitting them further
// would just relocate import cycles without adding clarity.
package model

import (
	"encoding/json"

	"github.com/gopasrc/pasrc/internal/entropy"
)

// Document is the root aggregate (spec §3).
type Document struct {
	Screens     map[string]*IRBlock
	Components  map[string]*IRBlock
	ScreenOrder []string

	Templates    map[string]*TemplateState
	EditorStates map[string]*ControlState

	Assets       map[string]*AssetBlob
	UnknownFiles map[string]*Blob

	Entropy *entropy.Entropy

	Properties        json.RawMessage
	Header            json.RawMessage
	PublishInfo       *PublishInfo
	Themes            json.RawMessage
	ResourcesManifest *ResourceManifest
	Checksum          string
	FormatVersion     FormatVersion

	// ComponentReferences and Connections mirror the two optional top-level
	// manifests the source tree names explicitly (spec §4.5); nil when the
	// PKG carried neither.
	ComponentReferences json.RawMessage
	Connections         json.RawMessage
}

// New returns an empty Document ready for either loader to populate.
func New() *Document {
	return &Document{
		Screens:      map[string]*IRBlock{},
		Components:   map[string]*IRBlock{},
		Templates:    map[string]*TemplateState{},
		EditorStates: map[string]*ControlState{},
		Assets:       map[string]*AssetBlob{},
		UnknownFiles: map[string]*Blob{},
		Entropy:      entropy.New(),
	}
}

// FormatVersion is the (major, minor) pair spec §6 requires to match exactly
// on source load (I7).
type FormatVersion struct {
	Major int
	Minor int
}

// CurrentFormatVersion is the version this tool reads and writes.
var CurrentFormatVersion = FormatVersion{Major: 0, Minor: 18}

func (v FormatVersion) Equal(o FormatVersion) bool { return v.Major == o.Major && v.Minor == o.Minor }

// Blob is an opaque byte payload kept for round-trip fidelity (unknown
// files under Other/, or any entry this tool doesn't interpret).
type Blob struct {
	Bytes []byte
}

// AssetBlob is a binary asset entry plus its display metadata.
type AssetBlob struct {
	Bytes       []byte
	DisplayName string
}

// PublishInfo mirrors the PKG's publish-info manifest; LogoFileName is the
// one field AssetStabilizer normalizes (spec §4.2).
type PublishInfo struct {
	LogoFileName string
	Extra        map[string]json.RawMessage
	extraOrder   []string
}

// ResourceManifest mirrors the PKG's resource manifest: every local-file
// resource the app references.
type ResourceManifest struct {
	Resources []ResourceEntry `json:"resources"`
}

// ResourceKind distinguishes the handful of resource kinds the manifest can
// declare; only LocalFile resources are backed by an asset blob.
type ResourceKind string

const (
	ResourceKindLocalFile ResourceKind = "LocalFile"
	ResourceKindOther     ResourceKind = "Other"
)

// ResourceEntry is one entry in the resource manifest.
type ResourceEntry struct {
	Name       string
	Kind       ResourceKind
	Path       string
	FileName   string
	Extra      map[string]json.RawMessage
	extraOrder []string
}
