// Package sourcelayout implements SourceLayout (spec §4.5): the rigid
// on-disk directory shape a Document maps to, and the two directions that
// move between them — Write lays a Document out as a source tree, Read
// reassembles a Document from one.
package sourcelayout

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/editorstate"
	"github.com/gopasrc/pasrc/internal/entropy"
	"github.com/gopasrc/pasrc/internal/model"
	"github.com/gopasrc/pasrc/internal/padsl"
	"github.com/gopasrc/pasrc/internal/templatestore"
)

// File is one entry the tree needs to exist: a path relative to the source
// root plus its bytes. Write/Read operate purely in terms of File slices so
// callers can back them with a real filesystem, an in-memory map (tests), or
// a zip archive's extracted entries without this package caring which.
type File struct {
	Path  string
	Bytes []byte
}

// Canonical path prefixes the fixed tree shape names (spec §4.5).
const (
	DirSrc           = "Src"
	DirComponents    = "Src/Components"
	DirTests         = "Src/Tests"
	DirEditorState   = "Src/EditorState"
	DirAssets        = "Assets"
	DirEntropyFiles  = "Entropy"
	DirOther         = "Other"
	FileCanvas       = "CanvasManifest.json"
	FileTemplates    = "ControlTemplates.json"
	FileThemes       = "Src/Themes.json"
	FileResources    = "Assets/Resources.json"
	FileEntropy      = "Entropy/Entropy.json"
	FileChecksum     = "Entropy/Checksum.json"
	FileComponentRef = "ComponentReferences.json"
	FileConnections  = "Connections/Connections.json"
	screenSuffix     = ".pa.yaml"
	componentSuffix  = ".pa.yaml"
	editorStateSuffix = ".editorstate.json"
)

// Write lays doc out as a complete source tree (spec §4.5). Callers own how
// the returned files actually reach disk.
func Write(doc *model.Document, diags *diagnostics.Container) ([]File, error) {
	var files []File

	add := func(p string, b []byte) { files = append(files, File{Path: p, Bytes: b}) }
	addJSON := func(p string, v interface{}) error {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		add(p, b)
		return nil
	}

	if doc.Header != nil {
		add(FileCanvas, doc.Header)
	}
	if doc.Properties != nil {
		add(FileTemplates, doc.Properties)
	}
	if doc.Themes != nil {
		add(FileThemes, doc.Themes)
	}
	if doc.ComponentReferences != nil {
		add(FileComponentRef, doc.ComponentReferences)
	}
	if doc.Connections != nil {
		add(FileConnections, doc.Connections)
	}

	for _, name := range doc.ScreenOrder {
		block, ok := doc.Screens[name]
		if !ok {
			continue
		}
		dir := DirSrc
		if templatestore.IsTestSuiteTemplate(block.Name.Kind.TypeName) {
			dir = DirTests
		}
		add(fmt.Sprintf("%s/%s%s", dir, name, screenSuffix), []byte(padsl.Render(block)))
	}
	var compNames []string
	for name := range doc.Components {
		compNames = append(compNames, name)
	}
	sort.Strings(compNames)
	for _, name := range compNames {
		add(fmt.Sprintf("%s/%s%s", DirComponents, name, componentSuffix), []byte(padsl.Render(doc.Components[name])))
	}

	topParents := map[string][]*model.ControlState{}
	var stateNames []string
	for name := range doc.EditorStates {
		stateNames = append(stateNames, name)
	}
	sort.Strings(stateNames)
	for _, name := range stateNames {
		cs := doc.EditorStates[name]
		topParents[cs.TopParentName] = append(topParents[cs.TopParentName], cs)
	}
	var topNames []string
	for name := range topParents {
		topNames = append(topNames, name)
	}
	sort.Strings(topNames)
	for _, top := range topNames {
		if err := addJSON(fmt.Sprintf("%s/%s%s", DirEditorState, top, editorStateSuffix), topParents[top]); err != nil {
			return nil, err
		}
	}

	if doc.ResourcesManifest != nil {
		if err := addJSON(FileResources, doc.ResourcesManifest); err != nil {
			return nil, err
		}
	}
	var assetNames []string
	for p := range doc.Assets {
		assetNames = append(assetNames, p)
	}
	sort.Strings(assetNames)
	for _, p := range assetNames {
		add(path.Join(DirAssets, p), doc.Assets[p].Bytes)
	}

	if doc.Entropy != nil {
		b, err := doc.Entropy.Encode()
		if err != nil {
			return nil, err
		}
		add(FileEntropy, b)
	}
	if doc.Checksum != "" {
		if err := addJSON(FileChecksum, map[string]string{"checksum": doc.Checksum}); err != nil {
			return nil, err
		}
	}

	var unknownNames []string
	for p := range doc.UnknownFiles {
		unknownNames = append(unknownNames, p)
	}
	sort.Strings(unknownNames)
	for _, p := range unknownNames {
		blob := doc.UnknownFiles[p]
		add(path.Join(DirOther, p), canonicalizeIfJSON(p, blob.Bytes))
	}

	return files, nil
}

// canonicalizeIfJSON re-serializes JSON files under Other/ with sorted keys
// and fixed indentation so their diffs stay stable across runs (spec §4.5).
// Non-JSON or malformed payloads pass through untouched.
func canonicalizeIfJSON(name string, raw []byte) []byte {
	if !strings.HasSuffix(strings.ToLower(name), ".json") {
		return raw
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return raw
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return raw
	}
	return b
}

// Read reassembles a Document from a source tree's files (the inverse of
// Write). IR parsing is delegated to padsl; screens and components are
// identified purely by their directory and suffix. diags collects the
// EditorStateError (spec §7) raised when two editor-state files disagree on
// a control name.
func Read(files []File, diags *diagnostics.Container) (*model.Document, error) {
	doc := model.New()
	byPath := map[string][]byte{}
	for _, f := range files {
		byPath[f.Path] = f.Bytes
	}

	testScreens := map[string]bool{}
	for p := range byPath {
		if strings.HasPrefix(p, DirTests+"/") && strings.HasSuffix(p, screenSuffix) {
			testScreens[strings.TrimSuffix(strings.TrimPrefix(p, DirTests+"/"), screenSuffix)] = true
		}
	}

	for p, b := range byPath {
		switch {
		case p == FileCanvas:
			doc.Header = b
		case p == FileTemplates:
			doc.Properties = b
		case p == FileThemes:
			doc.Themes = b
		case p == FileComponentRef:
			doc.ComponentReferences = b
		case p == FileConnections:
			doc.Connections = b
		case p == FileEntropy:
			ent, err := entropy.Decode(b)
			if err != nil {
				return nil, err
			}
			doc.Entropy = ent
		case p == FileChecksum:
			var v map[string]string
			if err := json.Unmarshal(b, &v); err == nil {
				doc.Checksum = v["checksum"]
			}
		case p == FileResources:
			var rm model.ResourceManifest
			if err := json.Unmarshal(b, &rm); err != nil {
				return nil, err
			}
			doc.ResourcesManifest = &rm
		case strings.HasPrefix(p, DirComponents+"/") && strings.HasSuffix(p, componentSuffix):
			name := strings.TrimSuffix(strings.TrimPrefix(p, DirComponents+"/"), componentSuffix)
			block, err := padsl.Parse(string(b))
			if err != nil {
				return nil, fmt.Errorf("sourcelayout: parsing %s: %w", p, err)
			}
			doc.Components[name] = block
		case strings.HasPrefix(p, DirTests+"/") && strings.HasSuffix(p, screenSuffix):
			name := strings.TrimSuffix(strings.TrimPrefix(p, DirTests+"/"), screenSuffix)
			block, err := padsl.Parse(string(b))
			if err != nil {
				return nil, fmt.Errorf("sourcelayout: parsing %s: %w", p, err)
			}
			doc.Screens[name] = block
			doc.ScreenOrder = append(doc.ScreenOrder, name)
		case strings.HasPrefix(p, DirSrc+"/") && strings.HasSuffix(p, screenSuffix) && !strings.HasPrefix(p, DirComponents+"/") && !strings.HasPrefix(p, DirTests+"/"):
			name := strings.TrimSuffix(strings.TrimPrefix(p, DirSrc+"/"), screenSuffix)
			block, err := padsl.Parse(string(b))
			if err != nil {
				return nil, fmt.Errorf("sourcelayout: parsing %s: %w", p, err)
			}
			doc.Screens[name] = block
			doc.ScreenOrder = append(doc.ScreenOrder, name)
		case strings.HasPrefix(p, DirEditorState+"/") && strings.HasSuffix(p, editorStateSuffix):
			var states []*model.ControlState
			if err := json.Unmarshal(b, &states); err != nil {
				return nil, fmt.Errorf("sourcelayout: parsing %s: %w", p, err)
			}
			for _, cs := range states {
				insideTestSuite := testScreens[cs.TopParentName]
				if diag := editorstate.Register(doc.EditorStates, cs, insideTestSuite, true); diag != nil && diags != nil {
					diags.Add(diag)
				}
			}
		case strings.HasPrefix(p, DirAssets+"/") && p != FileResources:
			doc.Assets[strings.TrimPrefix(p, DirAssets+"/")] = &model.AssetBlob{Bytes: b}
		case strings.HasPrefix(p, DirOther+"/"):
			doc.UnknownFiles[strings.TrimPrefix(p, DirOther+"/")] = &model.Blob{Bytes: b}
		default:
			doc.UnknownFiles[p] = &model.Blob{Bytes: b}
		}
	}
	sort.Strings(doc.ScreenOrder)
	return doc, nil
}
