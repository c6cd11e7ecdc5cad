package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		route string
		want  Kind
	}{
		{HealthRoute, Public},
		{MetricsRoute, StaticCredential},
		{AuthenticateRoute, CredentialExchange},
		{StuffRoute, TokenRequired},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			kind, ok := Classify(tt.route)
			assert.True(t, ok)
			assert.Equal(t, tt.want, kind)
		})
	}

	t.Run("unlisted route is not served", func(t *testing.T) {
		_, ok := Classify("/admin")
		assert.False(t, ok)
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "public", Public.String())
	assert.Equal(t, "static_credential", StaticCredential.String())
	assert.Equal(t, "credential_exchange", CredentialExchange.String())
	assert.Equal(t, "token_required", TokenRequired.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
