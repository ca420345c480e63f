// Package pkgio implements PkgLoader and PkgWriter (spec §4.6): the drivers
// that move a Document between its in-memory form and the PKG's ZIP wire
// format, delegating the control-tree transform to irsplit and the asset
// renaming to the assets package.
package pkgio

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/gopasrc/pasrc/internal/assets"
	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/entropy"
	"github.com/gopasrc/pasrc/internal/irsplit"
	"github.com/gopasrc/pasrc/internal/logging"
	"github.com/gopasrc/pasrc/internal/model"
	"github.com/gopasrc/pasrc/internal/pathcodec"
	"github.com/gopasrc/pasrc/internal/templatestore"
)

// Recognized PKG-internal entry names, case-insensitive, per the fixed kind
// table spec §6 requires ("Entries recognized by exact relative path"). The
// spec only pins down the *source tree*'s shape (§4.5); these PKG-side names
// are this tool's own consistent convention for the zip it reads and writes.
const (
	entryCanvas       = "canvasmanifest.json"
	entryTemplates    = "controltemplates.json"
	entryResources    = "resources.json"
	entryConnections  = "connections/connections.json"
	entryComponentRef = "componentreferences.json"
	entryChecksum     = "checksum.json"
)

// Load reads zr into a fresh Document, running IRSplitCombine's split and
// AssetStabilizer over the raw control trees and resource manifest as it
// goes (spec §4.6 "calls applyTransformsAfterLoad").
func Load(zr *zip.Reader, log logging.Logger, diags *diagnostics.Container) (*model.Document, error) {
	if log == nil {
		log = logging.Discard()
	}
	if diags == nil {
		diags = diagnostics.NewContainer()
	}

	entries, err := readEntries(zr, log)
	if err != nil {
		return nil, err
	}

	doc := model.New()
	doc.Entropy = entropy.New()

	if raw, ok := entries[entryTemplates]; ok {
		var tf templatesFile
		if err := json.Unmarshal(raw, &tf); err != nil {
			return nil, fmt.Errorf("pkgio: decoding %s: %w", entryTemplates, err)
		}
		for _, t := range tf.Templates {
			doc.Templates[t.Name] = t
		}
	}

	canvasRaw, ok := entries[entryCanvas]
	if !ok {
		d := diagnostics.New(diagnostics.FormatNotSupported, "missing required manifest %s", entryCanvas)
		diags.Add(d)
		return nil, d
	}
	var canvas canvasManifest
	if err := json.Unmarshal(canvasRaw, &canvas); err != nil {
		return nil, fmt.Errorf("pkgio: decoding %s: %w", entryCanvas, err)
	}
	gotVersion := model.FormatVersion{Major: canvas.FormatVersion.Major, Minor: canvas.FormatVersion.Minor}
	if !gotVersion.Equal(model.CurrentFormatVersion) {
		d := diagnostics.New(diagnostics.FormatNotSupported, "format version %d.%d not supported", canvas.FormatVersion.Major, canvas.FormatVersion.Minor)
		diags.Add(d)
		return nil, d
	}
	doc.FormatVersion = model.CurrentFormatVersion
	doc.Header = canvas.Header
	doc.PublishInfo = canvas.PublishInfo

	ctx := irsplit.NewContext(doc.Templates, doc.EditorStates, doc.Entropy, diags)

	for _, scr := range canvas.Screens {
		insideTestSuite := templatestore.IsTestSuiteTemplate(scr.TemplateName)
		block := irsplit.Split(ctx, scr, insideTestSuite)
		doc.Screens[scr.Name] = block
		doc.ScreenOrder = append(doc.ScreenOrder, scr.Name)
	}
	sort.Strings(doc.ScreenOrder)
	// Component definitions are never test roots; the I1 exception applies
	// only to top-level screens (spec §3 I1, §4.5's Src/Tests/ shard).
	for _, comp := range canvas.ComponentDefinitions {
		block := irsplit.Split(ctx, comp, false)
		doc.Components[comp.Name] = block
	}

	if raw, ok := entries[entryChecksum]; ok {
		var v map[string]string
		if err := json.Unmarshal(raw, &v); err == nil {
			doc.Checksum = v["checksum"]
		}
	}

	if raw, ok := entries[entryResources]; ok {
		var rm model.ResourceManifest
		if err := json.Unmarshal(raw, &rm); err != nil {
			return nil, fmt.Errorf("pkgio: decoding %s: %w", entryResources, err)
		}
		doc.ResourcesManifest = &rm
	}

	if raw, ok := entries[entryConnections]; ok {
		doc.Connections = json.RawMessage(raw)
	}
	if raw, ok := entries[entryComponentRef]; ok {
		doc.ComponentReferences = json.RawMessage(raw)
	}

	consumed := map[string]bool{
		entryCanvas: true, entryTemplates: true, entryResources: true, entryChecksum: true,
		entryConnections: true, entryComponentRef: true,
	}

	assetPaths := map[string]string{} // normalized path -> original relative archive path
	if doc.ResourcesManifest != nil {
		for i := range doc.ResourcesManifest.Resources {
			res := &doc.ResourcesManifest.Resources[i]
			if res.Kind != model.ResourceKindLocalFile {
				continue
			}
			rel := path.Join(res.Path, res.FileName)
			norm := pathcodec.Normalize(rel)
			assetPaths[norm] = rel
			consumed[norm] = true
		}
	}
	for norm, rel := range assetPaths {
		blob, ok := entries[norm]
		if !ok {
			diags.Warnf(diagnostics.ValidationWarning, "resource manifest references missing asset %s", rel)
			continue
		}
		doc.Assets[rel] = &model.AssetBlob{Bytes: blob}
	}

	for norm, raw := range entries {
		if consumed[norm] {
			continue
		}
		doc.UnknownFiles[norm] = &model.Blob{Bytes: raw}
	}

	if doc.ResourcesManifest != nil {
		plans := assets.Stabilize(doc.ResourcesManifest, doc.Entropy, log)
		applyAssetRenames(doc, plans)
	}
	assets.StabilizeLogo(doc.PublishInfo, doc.Entropy)

	return doc, nil
}

// applyAssetRenames re-keys doc.Assets under each plan's new filename,
// matching the rename AssetStabilizer just recorded into the resource
// manifest and entropy.
func applyAssetRenames(doc *model.Document, plans []assets.RenamePlan) {
	if doc.ResourcesManifest == nil {
		return
	}
	byResource := map[string]string{}
	for _, p := range plans {
		byResource[p.ResourceName] = p.NewFileName
	}
	for i := range doc.ResourcesManifest.Resources {
		res := &doc.ResourcesManifest.Resources[i]
		newName, ok := byResource[res.Name]
		if !ok {
			continue
		}
		oldRel := path.Join(res.Path, res.FileName)
		newRel := path.Join(res.Path, newName)
		if blob, ok := doc.Assets[oldRel]; ok && oldRel != newRel {
			doc.Assets[newRel] = blob
			delete(doc.Assets, oldRel)
		}
		res.FileName = newName
	}
}

func readEntries(zr *zip.Reader, log logging.Logger) (map[string][]byte, error) {
	entries := map[string][]byte{}
	for _, f := range zr.File {
		norm := pathcodec.Normalize(f.Name)
		if _, dup := entries[norm]; dup {
			log.Warn(context.Background(), nil, "duplicate archive entry after path normalization", "path", f.Name)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("pkgio: opening %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("pkgio: reading %s: %w", f.Name, err)
		}
		entries[norm] = b
	}
	return entries, nil
}
