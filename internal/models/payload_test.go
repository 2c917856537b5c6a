package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONPayloadValueEmptyIsNull(t *testing.T) {
	var p JSONPayload
	v, err := p.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestJSONPayloadScanRoundTrip(t *testing.T) {
	var p JSONPayload
	require.NoError(t, p.Scan(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, string(p))

	require.NoError(t, p.Scan([]byte(`[1,2,3]`)))
	assert.Equal(t, `[1,2,3]`, string(p))

	require.NoError(t, p.Scan(nil))
	assert.Nil(t, []byte(p))
}

func TestJSONPayloadMarshal(t *testing.T) {
	type wrapper struct {
		Data JSONPayload `json:"data"`
	}

	out, err := json.Marshal(wrapper{Data: JSONPayload(`{"k":"v"}`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"k":"v"}}`, string(out))

	out, err = json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":null}`, string(out))
}

func TestJSONPayloadUnmarshalPreservesDocument(t *testing.T) {
	type wrapper struct {
		Data JSONPayload `json:"data"`
	}

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"data":{"nested":{"x":true}}}`), &w))
	assert.JSONEq(t, `{"nested":{"x":true}}`, string(w.Data))

	require.NoError(t, json.Unmarshal([]byte(`{"data":null}`), &w))
	assert.Nil(t, []byte(w.Data))
}

func TestFeatureTypeKnown(t *testing.T) {
	assert.True(t, FeatureTextToImage.Known())
	assert.False(t, FeatureType("something-else").Known())
	assert.Len(t, KnownFeatures, 7)
}
