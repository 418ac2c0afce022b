package vc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		setup func(c Credential)
		want  bool
	}{
		{
			name:  "plain credential",
			setup: func(c Credential) {},
			want:  true,
		},
		{
			name: "revoked",
			setup: func(c Credential) {
				c["revoked"] = true
			},
			want: false,
		},
		{
			name: "revoked overrides future expiration",
			setup: func(c Credential) {
				c["revoked"] = true
				c["expirationDate"] = "2030-01-01T00:00:00Z"
			},
			want: false,
		},
		{
			name: "expired",
			setup: func(c Credential) {
				c["expirationDate"] = "2020-01-01T00:00:00Z"
			},
			want: false,
		},
		{
			name: "future expiration",
			setup: func(c Credential) {
				c["expirationDate"] = "2030-01-01T00:00:00Z"
			},
			want: true,
		},
		{
			name: "unparsable expiration",
			setup: func(c Credential) {
				c["expirationDate"] = "next week"
			},
			want: false,
		},
		{
			name: "supported schema type",
			setup: func(c Credential) {
				c["credentialSchema"] = map[string]interface{}{
					"id":   "https://example.org/schemas/badge.json",
					"type": "JsonSchemaValidator2019",
				}
			},
			want: true,
		},
		{
			name: "unsupported schema type",
			setup: func(c Credential) {
				c["credentialSchema"] = map[string]interface{}{
					"id":   "https://example.org/schemas/badge.json",
					"type": "UnsupportedSchemaType",
				}
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCredential(t)
			tt.setup(c)
			assert.Equal(t, tt.want, c.IsValid(now))
		})
	}
}

func TestValidateSchema(t *testing.T) {
	t.Run("no schema passes", func(t *testing.T) {
		ok, err := testCredential(t).ValidateSchema()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("supported type without body passes", func(t *testing.T) {
		c := testCredential(t)
		c["credentialSchema"] = map[string]interface{}{
			"id":   "https://example.org/schemas/badge.json",
			"type": "1EdTechJsonSchemaValidator2019",
		}
		ok, err := c.ValidateSchema()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unsupported type raises", func(t *testing.T) {
		c := testCredential(t)
		c["credentialSchema"] = map[string]interface{}{
			"id":   "https://example.org/schemas/badge.json",
			"type": "UnsupportedSchemaType",
		}
		ok, err := c.ValidateSchema()
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrUnsupportedSchemaType)
	})

	t.Run("inline schema body is enforced", func(t *testing.T) {
		schema := []byte(`{
			"type": "object",
			"required": ["id", "issuer", "credentialSubject"],
			"properties": {"id": {"type": "string"}}
		}`)

		c := testCredential(t)
		c["credentialSchema"] = map[string]interface{}{
			"id":   "https://example.org/schemas/badge.json",
			"type": "JsonSchemaValidator2019",
		}

		ok, err := c.ValidateSchema(WithSchemaJSON(schema))
		require.NoError(t, err)
		assert.True(t, ok)

		delete(c, "issuer")
		ok, err = c.ValidateSchema(WithSchemaJSON(schema))
		require.NoError(t, err, "a failed schema check is a negative result, not an error")
		assert.False(t, ok)
	})
}
