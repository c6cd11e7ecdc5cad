package stuff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futureprocessing/auth-gateway/models"
)

func TestStaticGateway_GetStuff(t *testing.T) {
	gw := NewStaticGateway()
	identity := models.NewIdentity("johny", []string{"ROLE_DOMAIN_USER"}, "")

	got, err := gw.GetStuff(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, "stuff for johny", got.Name)
}

func TestStaticGateway_GetStuff_nilIdentity(t *testing.T) {
	gw := NewStaticGateway()

	got, err := gw.GetStuff(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, got)
}
