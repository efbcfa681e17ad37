package plugin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type basicPlugin struct {
	name  string
	state State
}

func (p *basicPlugin) Name() string { return p.name }
func (p *basicPlugin) State() State { return p.state }

type authCapablePlugin struct {
	basicPlugin
}

func (p *authCapablePlugin) Authenticate(ctx context.Context, username, passwordHash string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (p *authCapablePlugin) RegisterUser(ctx context.Context, username, passwordHash, email string) ([]string, error) {
	return nil, nil
}

func TestAuthPluginEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.AuthPlugin())
}

func TestAuthPluginSkipsNonAuthPlugins(t *testing.T) {
	r := NewRegistry()
	r.Register(&basicPlugin{name: "other", state: StateEnabled})
	auth := &authCapablePlugin{basicPlugin{name: "idp", state: StateEnabled}}
	r.Register(auth)

	found := r.AuthPlugin()
	require.NotNil(t, found)
	assert.Equal(t, "idp", found.Name())
}

func TestAuthPluginRegistrationOrderWins(t *testing.T) {
	r := NewRegistry()
	first := &authCapablePlugin{basicPlugin{name: "first", state: StateDisabled}}
	second := &authCapablePlugin{basicPlugin{name: "second", state: StateEnabled}}
	r.Register(first)
	r.Register(second)

	// Lookup ignores state; the caller decides what disabled means
	found := r.AuthPlugin()
	require.NotNil(t, found)
	assert.Equal(t, "first", found.Name())
	assert.Equal(t, StateDisabled, found.State())
}

func TestAllPreservesOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&basicPlugin{name: "a"})
	r.Register(&basicPlugin{name: "b"})

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name())
	assert.Equal(t, "b", all[1].Name())
}
