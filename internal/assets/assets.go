// Package assets implements AssetTable and AssetStabilizer (spec §4.2):
// tracking binary asset blobs by normalized archive path, and the
// deterministic renaming scheme that keeps resource filenames stable and
// collision-free on unpack while being exactly reversible on pack.
package assets

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gopasrc/pasrc/internal/entropy"
	"github.com/gopasrc/pasrc/internal/logging"
	"github.com/gopasrc/pasrc/internal/model"
)

// Table is a mapping from normalized archive path to its blob, the shape
// spec §4.2 calls AssetTable.
type Table struct {
	blobs map[string]*model.AssetBlob
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{blobs: map[string]*model.AssetBlob{}}
}

// Put inserts or replaces the blob at normalizedPath.
func (t *Table) Put(normalizedPath string, blob *model.AssetBlob) {
	t.blobs[normalizedPath] = blob
}

// Get returns the blob at normalizedPath, if any.
func (t *Table) Get(normalizedPath string) (*model.AssetBlob, bool) {
	b, ok := t.blobs[normalizedPath]
	return b, ok
}

// All returns every tracked path, sorted for deterministic iteration.
func (t *Table) All() []string {
	out := make([]string, 0, len(t.blobs))
	for p := range t.blobs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// AssetInfo is the small sidecar AssetStabilizer writes next to a renamed
// asset when the rename wasn't a simple case collision (spec §4.2
// "asset-info sidecar").
type AssetInfo struct {
	OriginalName string `json:"originalName"`
	NewFileName  string `json:"newFileName"`
	Path         string `json:"path"`
}

// RenamePlan is one decision AssetStabilizer made for a single resource.
type RenamePlan struct {
	ResourceName string
	OriginalFile string
	NewFileName  string
	Sidecar      *AssetInfo
}

// localEntry pairs a LocalFile resource with its position in the manifest,
// so Stabilize can group resources by case-folded candidate name while
// still returning plans in manifest order.
type localEntry struct {
	idx int
	res model.ResourceEntry
}

// Stabilize applies the rename-to-resource-name and case-collision rules to
// every LocalFile resource in manifest, recording originals into ent so pack
// can undo them later (spec §4.2 steps 1-3). Returns one RenamePlan per
// LocalFile resource, in manifest order.
//
// Case collisions are resolved within each case-folded group by sorting the
// group's resource names ordinally: the sorted-first name keeps the
// unsuffixed candidate, every later one is aliased. Manifest order plays no
// part in who wins, since the manifest is not guaranteed to list collision
// members in ordinal order.
func Stabilize(manifest *model.ResourceManifest, ent *entropy.Entropy, log logging.Logger) []RenamePlan {
	if log == nil {
		log = logging.Discard()
	}

	var locals []localEntry
	groups := map[string][]localEntry{}
	var groupOrder []string
	for i, res := range manifest.Resources {
		if res.Kind != model.ResourceKindLocalFile {
			continue
		}
		e := localEntry{idx: i, res: res}
		locals = append(locals, e)

		folded := strings.ToLower(res.Name + path.Ext(res.FileName))
		if _, seen := groups[folded]; !seen {
			groupOrder = append(groupOrder, folded)
		}
		groups[folded] = append(groups[folded], e)
	}

	seenFolded := map[string]bool{}
	seenOriginalFile := map[string]int{}
	planByIdx := make(map[int]RenamePlan, len(locals))

	for _, folded := range groupOrder {
		group := groups[folded]
		sort.Slice(group, func(i, j int) bool { return group[i].res.Name < group[j].res.Name })

		for pos, e := range group {
			res := e.res
			ext := path.Ext(res.FileName)
			candidate := res.Name + ext

			if pos > 0 {
				k := 1
				var aliased string
				for {
					aliased = fmt.Sprintf("%s_%d%s", res.Name, k, ext)
					if !seenFolded[strings.ToLower(aliased)] {
						break
					}
					k++
				}
				log.Warn(context.Background(), nil, "asset case collision", "resource", res.Name, "alias", aliased)
				candidate = aliased
			}
			seenFolded[strings.ToLower(candidate)] = true

			plan := RenamePlan{ResourceName: res.Name, OriginalFile: res.FileName, NewFileName: candidate}

			// Duplicate original filename across distinct resources (not a
			// case collision) gets an asset-info sidecar so pack can
			// restore it without relying solely on Entropy.
			if n := seenOriginalFile[res.FileName]; n > 0 {
				plan.Sidecar = &AssetInfo{OriginalName: res.FileName, NewFileName: candidate, Path: res.Path}
			}
			seenOriginalFile[res.FileName]++

			ent.LocalResourceFileNames[res.Name] = res.FileName
			planByIdx[e.idx] = plan
		}
	}

	plans := make([]RenamePlan, 0, len(locals))
	for _, e := range locals {
		plans = append(plans, planByIdx[e.idx])
	}
	return plans
}

// StabilizeLogo renames the app logo to logo<ext> and records the previous
// name into ent (spec §4.2 "logo normalization").
func StabilizeLogo(pub *model.PublishInfo, ent *entropy.Entropy) string {
	if pub == nil || pub.LogoFileName == "" {
		return ""
	}
	ext := path.Ext(pub.LogoFileName)
	ent.OldLogoFileName = pub.LogoFileName
	newName := "logo" + ext
	pub.LogoFileName = newName
	return newName
}

// Restore reverses Stabilize for a single resource on pack: entropy's
// recorded original name wins; absent an entry, a fresh 4-digit zero-padded
// numeric name greater than any seen is assigned (spec §4.2 "inverse on
// pack").
func Restore(resourceName string, ent *entropy.Entropy, used map[int]bool) string {
	if orig, ok := ent.LocalResourceFileNames[resourceName]; ok {
		return orig
	}
	n := ent.NextAssetNumber(used)
	used[n] = true
	return fmt.Sprintf("%04d", n)
}

// RestoreLogo reverses StabilizeLogo: if entropy recorded an original logo
// filename, that name is restored; otherwise the stabilized name is kept.
func RestoreLogo(pub *model.PublishInfo, ent *entropy.Entropy) {
	if pub == nil || ent.OldLogoFileName == "" {
		return
	}
	pub.LogoFileName = ent.OldLogoFileName
}
