package vc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONLDContext(t *testing.T) {
	jsonld, err := testCredential(t).ToJSONLD()
	require.NoError(t, err)

	assert.Equal(t, []interface{}{ContextCredentials, ContextOpenBadges}, jsonld["@context"])
}

func TestToJSONLDCollapsesFullObjects(t *testing.T) {
	c := testCredential(t)
	c["issuer"] = map[string]interface{}{
		"id":   "https://example.org/issuers/1",
		"type": "Profile",
		"name": "Example Org",
		"url":  "https://example.org",
	}
	subject := c["credentialSubject"].(map[string]interface{})
	subject["achievement"] = map[string]interface{}{
		"id":          "https://example.org/badges/1",
		"type":        "Achievement",
		"name":        "Test Badge",
		"description": "A badge for testing",
	}

	jsonld, err := c.ToJSONLD()
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"id":   "https://example.org/issuers/1",
		"type": "Profile",
	}, jsonld["issuer"])

	achievement := jsonld["credentialSubject"].(map[string]interface{})["achievement"]
	assert.Equal(t, map[string]interface{}{
		"id":   "https://example.org/badges/1",
		"type": "Achievement",
	}, achievement)
}

func TestToJSONLDKeepsReferences(t *testing.T) {
	c := testCredential(t)
	c["issuer"] = "https://example.org/issuers/1"
	subject := c["credentialSubject"].(map[string]interface{})
	subject["achievement"] = map[string]interface{}{
		"id":   "https://example.org/badges/1",
		"type": "Achievement",
	}

	jsonld, err := c.ToJSONLD()
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/issuers/1", jsonld["issuer"])
	achievement := jsonld["credentialSubject"].(map[string]interface{})["achievement"]
	assert.Equal(t, map[string]interface{}{
		"id":   "https://example.org/badges/1",
		"type": "Achievement",
	}, achievement)
}

func TestToJSONLDDoesNotMutateReceiver(t *testing.T) {
	c := testCredential(t)
	_, err := c.ToJSONLD()
	require.NoError(t, err)

	_, hasContext := c["@context"]
	assert.False(t, hasContext)
}
