package vc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbadgekit/go-openbadge-sdk/openbadge/keys"
	"github.com/openbadgekit/go-openbadge-sdk/openbadge/proof"
)

func testEndorsement(t *testing.T) Credential {
	t.Helper()
	c, err := NewEndorsementCredential(
		"https://example.org/endorsements/1",
		"https://example.org/endorsers/1",
		EndorsementSubject{
			ID:                 "https://example.org/badges/1",
			Type:               "Achievement",
			EndorsementComment: "Meets our organization's quality standards.",
		},
	)
	require.NoError(t, err)
	return *c
}

func TestNewEndorsementCredential(t *testing.T) {
	c := testEndorsement(t)

	assert.Equal(t, "https://example.org/endorsements/1", c["id"])
	assert.Equal(t, []interface{}{TypeVerifiableCredential, TypeEndorsementCredential}, c["type"])
	assert.False(t, c.HasProof())

	subject, err := c.EndorsementSubject()
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/badges/1", subject.ID)
	assert.Equal(t, "Achievement", subject.Type)
	assert.Equal(t, "Meets our organization's quality standards.", subject.EndorsementComment)
}

func TestNewEndorsementCredentialGeneratesID(t *testing.T) {
	c, err := NewEndorsementCredential("", "https://example.org/endorsers/1",
		EndorsementSubject{ID: "https://example.org/badges/1", Type: "Achievement"})
	require.NoError(t, err)
	id, ok := (*c)["id"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(id, "urn:uuid:"), "generated id %q", id)
}

func TestNewEndorsementCredentialRequiredFields(t *testing.T) {
	subject := EndorsementSubject{ID: "https://example.org/badges/1", Type: "Achievement"}

	_, err := NewEndorsementCredential("id", "", subject)
	assert.Error(t, err)

	_, err = NewEndorsementCredential("id", "https://example.org/endorsers/1",
		EndorsementSubject{Type: "Achievement"})
	assert.Error(t, err)

	_, err = NewEndorsementCredential("id", "https://example.org/endorsers/1",
		EndorsementSubject{ID: "https://example.org/badges/1"})
	assert.Error(t, err)
}

func TestEndorsementTargetTypes(t *testing.T) {
	tests := []struct {
		name       string
		subjectID  string
		targetType string
	}{
		{name: "achievement", subjectID: "https://example.org/badges/1", targetType: "Achievement"},
		{name: "profile", subjectID: "https://example.org/issuers/1", targetType: "Profile"},
		{name: "credential", subjectID: "https://example.org/credentials/1", targetType: TypeOpenBadgeCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewEndorsementCredential("", "https://example.org/endorsers/1",
				EndorsementSubject{ID: tt.subjectID, Type: tt.targetType})
			require.NoError(t, err)

			subject, err := c.EndorsementSubject()
			require.NoError(t, err)
			assert.Equal(t, tt.subjectID, subject.ID)
			assert.Equal(t, tt.targetType, subject.Type)
		})
	}
}

func TestSignAndVerifyEndorsement(t *testing.T) {
	pair, err := keys.Generate(keys.AlgorithmEd25519)
	require.NoError(t, err)

	unsigned := testEndorsement(t)
	signed, err := unsigned.Sign(pair.Private(),
		"https://example.org/endorsers/1/keys/1", proof.SignatureTypeEd25519)
	require.NoError(t, err)

	assert.False(t, unsigned.HasProof(), "signing must not mutate the original")
	assert.True(t, signed.HasProof())

	ok, err := signed.Verify(pair.Public())
	require.NoError(t, err)
	assert.True(t, ok)

	tampered, err := signed.Clone()
	require.NoError(t, err)
	subject := tampered["credentialSubject"].(map[string]interface{})
	subject["endorsementComment"] = "Altered comment"

	ok, err = tampered.Verify(pair.Public())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEndorsementToJSONLD(t *testing.T) {
	c := testEndorsement(t)
	doc, err := c.ToJSONLD()
	require.NoError(t, err)

	assert.Equal(t, []interface{}{ContextCredentials, ContextOpenBadges}, doc["@context"])
	assert.Equal(t, c["credentialSubject"], doc["credentialSubject"])
}

func TestValidateEndorsement(t *testing.T) {
	t.Run("passes", func(t *testing.T) {
		result := ValidateEndorsement(testEndorsement(t))
		assert.True(t, result.IsValid, "errors: %v", result.Errors)
	})

	t.Run("collects all errors", func(t *testing.T) {
		c := Credential{
			"type":              []interface{}{TypeVerifiableCredential, TypeOpenBadgeCredential},
			"credentialSubject": map[string]interface{}{},
		}
		result := ValidateEndorsement(c)
		assert.False(t, result.IsValid)
		assert.GreaterOrEqual(t, len(result.Errors), 5)
	})

	t.Run("wrong type tag", func(t *testing.T) {
		c := testEndorsement(t)
		c["type"] = []interface{}{TypeVerifiableCredential, TypeOpenBadgeCredential}
		result := ValidateEndorsement(c)
		assert.False(t, result.IsValid)
		assert.Contains(t, result.Errors[0], TypeEndorsementCredential)
	})
}
