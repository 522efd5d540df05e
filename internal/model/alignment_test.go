package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndices_MarshalJSON(t *testing.T) {
	var nilIx Indices
	b, err := json.Marshal(nilIx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	b, err = json.Marshal(Indices{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, "[3,1,2]", string(b))
}

func TestIndices_ValueScan(t *testing.T) {
	v, err := Indices{0, 4}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[0,4]", v)

	var got Indices
	require.NoError(t, got.Scan(v))
	assert.Equal(t, Indices{0, 4}, got)

	require.NoError(t, got.Scan([]byte("[7]")))
	assert.Equal(t, Indices{7}, got)
}

func TestIndices_ScanNullAndEmpty(t *testing.T) {
	var got Indices
	require.NoError(t, got.Scan(nil))
	assert.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, got.Scan("null"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIndices_ScanInvalid(t *testing.T) {
	var got Indices
	assert.Error(t, got.Scan("not json"))
	assert.Error(t, got.Scan(42))
}

func TestAlignmentString(t *testing.T) {
	a := &Alignment{SentencePairID: 12}
	assert.Equal(t, "Alignment for pair 12", a.String())

	p := &SentencePair{SourceLanguage: "en", TargetLanguage: "fr"}
	assert.Equal(t, "en to fr pair", p.String())
}
