package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProdWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(EnvProd, &buf)

	log.Debug("hidden")
	log.Info("visible", "slug", "goa-offsite")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "visible", rec["msg"])
	assert.Equal(t, "goa-offsite", rec["slug"])
}

func TestNew_LocalIsPretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(EnvLocal, &buf)

	log.With("family", "ads").Debug("provider settled", "items", 3)

	out := buf.String()
	assert.Contains(t, out, "provider settled")
	assert.Contains(t, out, `"family": "ads"`)
	assert.Contains(t, out, `"items": 3`)
}
