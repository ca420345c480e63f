package pkgio

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopasrc/pasrc/internal/diagnostics"
)

func buildFixturePKGWithExtras(t *testing.T, extras map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	canvas := `{
		"formatVersion": {"major": 0, "minor": 18},
		"screens": [{
			"name": "Screen1",
			"controlUniqueId": "1",
			"template": {"name": "screen"},
			"rules": [],
			"children": [{
				"name": "Label1",
				"controlUniqueId": "2",
				"template": {"name": "label"},
				"rules": [{"name": "Text", "invariantScript": "\"hi\""}],
				"children": []
			}]
		}],
		"componentDefinitions": []
	}`
	w, err := zw.Create(entryCanvas)
	require.NoError(t, err)
	_, err = w.Write([]byte(canvas))
	require.NoError(t, err)

	templates := `{"templates": [
		{"name": "screen", "displayName": "screen"},
		{"name": "label", "displayName": "label"}
	]}`
	w, err = zw.Create(entryTemplates)
	require.NoError(t, err)
	_, err = w.Write([]byte(templates))
	require.NoError(t, err)

	for name, body := range extras {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(body)
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func buildFixturePKG(t *testing.T) []byte {
	t.Helper()
	return buildFixturePKGWithExtras(t, nil)
}

func TestLoadThenWriteRoundTripsChecksum(t *testing.T) {
	pkgBytes := buildFixturePKG(t)

	zr, err := zip.NewReader(bytes.NewReader(pkgBytes), int64(len(pkgBytes)))
	require.NoError(t, err)

	diags := diagnostics.NewContainer()
	doc, err := Load(zr, nil, diags)
	require.NoError(t, err)
	assert.False(t, diags.HasFatal())
	require.Len(t, doc.Screens, 1)

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	diag := Write(zw, doc, diagnostics.NewContainer())
	require.Nil(t, diag)
	require.NoError(t, zw.Close())

	zr2, err := zip.NewReader(bytes.NewReader(out.Bytes()), int64(out.Len()))
	require.NoError(t, err)
	diags2 := diagnostics.NewContainer()
	doc2, err := Load(zr2, nil, diags2)
	require.NoError(t, err)
	assert.False(t, diags2.HasFatal())

	require.Len(t, doc2.Screens, 1)
	assert.Equal(t, doc.Checksum, doc2.Checksum)
}

func readZipEntry(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return b
	}
	t.Fatalf("entry %s not found", name)
	return nil
}

// TestLoadThenWritePreservesConnectionsAndComponentReferences guards against
// silently dropping Connections.json/ComponentReferences.json: Load must
// carry their raw bytes onto doc.Connections/doc.ComponentReferences for
// Write to re-emit, rather than discarding them once marked consumed.
func TestLoadThenWritePreservesConnectionsAndComponentReferences(t *testing.T) {
	connectionsBody := []byte(`{"connections":[{"name":"Conn1"}]}`)
	componentRefBody := []byte(`{"componentReferences":[{"name":"Comp1"}]}`)
	pkgBytes := buildFixturePKGWithExtras(t, map[string][]byte{
		entryConnections:  connectionsBody,
		entryComponentRef: componentRefBody,
	})

	zr, err := zip.NewReader(bytes.NewReader(pkgBytes), int64(len(pkgBytes)))
	require.NoError(t, err)
	diags := diagnostics.NewContainer()
	doc, err := Load(zr, nil, diags)
	require.NoError(t, err)
	require.False(t, diags.HasFatal())

	assert.JSONEq(t, string(connectionsBody), string(doc.Connections))
	assert.JSONEq(t, string(componentRefBody), string(doc.ComponentReferences))

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	diag := Write(zw, doc, diagnostics.NewContainer())
	require.Nil(t, diag)
	require.NoError(t, zw.Close())

	zr2, err := zip.NewReader(bytes.NewReader(out.Bytes()), int64(out.Len()))
	require.NoError(t, err)
	assert.Equal(t, connectionsBody, readZipEntry(t, zr2, entryConnections))
	assert.Equal(t, componentRefBody, readZipEntry(t, zr2, entryComponentRef))
}

// TestLoadRelaxesI1InsideTestSuiteScreen guards I1's documented exception:
// a screen whose template is the "testsuite" kind may repeat control names
// the rest of the document already uses, and does so without raising
// DuplicateSymbol.
func TestLoadRelaxesI1InsideTestSuiteScreen(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	canvas := `{
		"formatVersion": {"major": 0, "minor": 18},
		"screens": [
			{
				"name": "Screen1",
				"controlUniqueId": "1",
				"template": {"name": "screen"},
				"rules": [],
				"children": []
			},
			{
				"name": "TestSuite1",
				"controlUniqueId": "2",
				"template": {"name": "testsuite"},
				"rules": [],
				"children": [{
					"name": "Screen1",
					"controlUniqueId": "3",
					"template": {"name": "screen"},
					"rules": [],
					"children": []
				}]
			}
		],
		"componentDefinitions": []
	}`
	w, err := zw.Create(entryCanvas)
	require.NoError(t, err)
	_, err = w.Write([]byte(canvas))
	require.NoError(t, err)

	templates := `{"templates": [
		{"name": "screen", "displayName": "screen"},
		{"name": "testsuite", "displayName": "testsuite"}
	]}`
	w, err = zw.Create(entryTemplates)
	require.NoError(t, err)
	_, err = w.Write([]byte(templates))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	pkgBytes := buf.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(pkgBytes), int64(len(pkgBytes)))
	require.NoError(t, err)

	diags := diagnostics.NewContainer()
	doc, err := Load(zr, nil, diags)
	require.NoError(t, err)
	assert.False(t, diags.HasFatal())
	assert.Empty(t, diags.ByCode(diagnostics.DuplicateSymbol))

	require.Contains(t, doc.Screens, "Screen1")
	require.Contains(t, doc.Screens, "TestSuite1")
}
