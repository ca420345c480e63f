package pkgio

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gopasrc/pasrc/internal/assets"
	"github.com/gopasrc/pasrc/internal/diagnostics"
	"github.com/gopasrc/pasrc/internal/editorstate"
	"github.com/gopasrc/pasrc/internal/irsplit"
	"github.com/gopasrc/pasrc/internal/model"
)

// Write runs IRSplitCombine's combine and AssetStabilizer's inverse over doc
// and streams the resulting PKG to zw (spec §4.6, mirror of Load). Returns
// the first fatal diagnostic encountered, if any.
func Write(zw *zip.Writer, doc *model.Document, diags *diagnostics.Container) *diagnostics.Diagnostic {
	if diags == nil {
		diags = diagnostics.NewContainer()
	}

	ctx := irsplit.NewContext(doc.Templates, doc.EditorStates, doc.Entropy, diags)

	canvas := canvasManifest{
		Header:        doc.Header,
		PublishInfo:   doc.PublishInfo,
		FormatVersion: formatVersionWire{Major: model.CurrentFormatVersion.Major, Minor: model.CurrentFormatVersion.Minor},
	}
	for _, name := range doc.ScreenOrder {
		block, ok := doc.Screens[name]
		if !ok {
			continue
		}
		raw, diag := irsplit.Combine(ctx, block)
		if diag != nil {
			return diag
		}
		canvas.Screens = append(canvas.Screens, raw)
	}
	var compNames []string
	for name := range doc.Components {
		compNames = append(compNames, name)
	}
	sort.Strings(compNames)
	for _, name := range compNames {
		raw, diag := irsplit.Combine(ctx, doc.Components[name])
		if diag != nil {
			return diag
		}
		canvas.ComponentDefinitions = append(canvas.ComponentDefinitions, raw)
	}

	present := map[string]bool{}
	var collectNames func(*model.RawControl)
	collectNames = func(r *model.RawControl) {
		present[r.Name] = true
		for _, c := range r.Children {
			collectNames(c)
		}
	}
	for _, raw := range canvas.Screens {
		collectNames(raw)
	}
	for _, raw := range canvas.ComponentDefinitions {
		collectNames(raw)
	}
	for _, diag := range editorstate.VerifyReferenced(doc.EditorStates, present) {
		diags.Add(diag)
	}

	entries := map[string][]byte{}
	addJSON := func(name string, v interface{}) *diagnostics.Diagnostic {
		b, err := json.Marshal(v)
		if err != nil {
			return diagnostics.AsInternal(fmt.Errorf("pkgio: encoding %s: %w", name, err))
		}
		entries[name] = b
		return nil
	}

	if diag := addJSON(entryCanvas, canvas); diag != nil {
		return diag
	}

	var tmplNames []string
	for name := range doc.Templates {
		tmplNames = append(tmplNames, name)
	}
	sort.Strings(tmplNames)
	tf := templatesFile{}
	for _, name := range tmplNames {
		tf.Templates = append(tf.Templates, doc.Templates[name])
	}
	if diag := addJSON(entryTemplates, tf); diag != nil {
		return diag
	}

	if doc.ResourcesManifest != nil {
		used := usedAssetNumbers(doc.ResourcesManifest)
		for i := range doc.ResourcesManifest.Resources {
			res := &doc.ResourcesManifest.Resources[i]
			if res.Kind != model.ResourceKindLocalFile {
				continue
			}
			restored := assets.Restore(res.Name, doc.Entropy, used)
			res.FileName = restored
		}
		assets.RestoreLogo(doc.PublishInfo, doc.Entropy)
		if diag := addJSON(entryResources, doc.ResourcesManifest); diag != nil {
			return diag
		}
	}

	if doc.Connections != nil {
		entries[entryConnections] = doc.Connections
	}
	if doc.ComponentReferences != nil {
		entries[entryComponentRef] = doc.ComponentReferences
	}

	for rel, blob := range doc.Assets {
		entries[rel] = blob.Bytes
	}
	for rel, blob := range doc.UnknownFiles {
		entries[rel] = blob.Bytes
	}

	sum := Checksum(entries)
	doc.Checksum = sum
	if diag := addJSON(entryChecksum, map[string]string{"checksum": sum}); diag != nil {
		return diag
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return diagnostics.AsInternal(err)
		}
		if _, err := w.Write(entries[name]); err != nil {
			return diagnostics.AsInternal(err)
		}
	}
	return nil
}

func usedAssetNumbers(rm *model.ResourceManifest) map[int]bool {
	used := map[int]bool{}
	for _, res := range rm.Resources {
		if n, ok := parseLeadingDigits(res.FileName); ok {
			used[n] = true
		}
	}
	return used
}

func parseLeadingDigits(s string) (int, bool) {
	n := 0
	found := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		found = true
	}
	return n, found
}
