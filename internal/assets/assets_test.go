package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopasrc/pasrc/internal/entropy"
	"github.com/gopasrc/pasrc/internal/model"
)

func TestStabilizeCaseCollision(t *testing.T) {
	// Scenario 4 from §8: "Photo" and "photo" collide case-insensitively.
	manifest := &model.ResourceManifest{
		Resources: []model.ResourceEntry{
			{Name: "Photo", Kind: model.ResourceKindLocalFile, FileName: "a.png"},
			{Name: "photo", Kind: model.ResourceKindLocalFile, FileName: "b.png"},
		},
	}
	ent := entropy.New()
	plans := Stabilize(manifest, ent, nil)

	require.Len(t, plans, 2)
	assert.Equal(t, "Photo.png", plans[0].NewFileName)
	assert.Equal(t, "photo_1.png", plans[1].NewFileName)
	assert.Equal(t, "a.png", ent.LocalResourceFileNames["Photo"])
	assert.Equal(t, "b.png", ent.LocalResourceFileNames["photo"])
}

func TestStabilizeCaseCollisionReversedManifestOrder(t *testing.T) {
	// Same collision as above but with the manifest listing the
	// ordinally-later name first: the winner must still be decided by
	// sorted ordinal, not by manifest position.
	manifest := &model.ResourceManifest{
		Resources: []model.ResourceEntry{
			{Name: "photo", Kind: model.ResourceKindLocalFile, FileName: "b.png"},
			{Name: "Photo", Kind: model.ResourceKindLocalFile, FileName: "a.png"},
		},
	}
	ent := entropy.New()
	plans := Stabilize(manifest, ent, nil)

	require.Len(t, plans, 2)
	assert.Equal(t, "photo_1.png", plans[0].NewFileName)
	assert.Equal(t, "Photo.png", plans[1].NewFileName)
}

func TestStabilizeLogoRoundTrip(t *testing.T) {
	pub := &model.PublishInfo{LogoFileName: "e6c4d3-ab.png"}
	ent := entropy.New()

	newName := StabilizeLogo(pub, ent)
	assert.Equal(t, "logo.png", newName)
	assert.Equal(t, "logo.png", pub.LogoFileName)
	assert.Equal(t, "e6c4d3-ab.png", ent.OldLogoFileName)

	RestoreLogo(pub, ent)
	assert.Equal(t, "e6c4d3-ab.png", pub.LogoFileName)
}

func TestRestoreUsesEntropyThenFreshNumber(t *testing.T) {
	ent := entropy.New()
	ent.LocalResourceFileNames["Known"] = "original.png"

	assert.Equal(t, "original.png", Restore("Known", ent, map[int]bool{}))

	used := map[int]bool{}
	name := Restore("Unknown", ent, used)
	assert.Equal(t, "0001", name)
}
