package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/cloudconfig"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/metadata"
	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/password"
)

func TestSetUserPassword_ReadOnlyService(t *testing.T) {
	t.Parallel()
	ctx, logs := newTestContext(t)
	sys := newFakeOS("admin")
	h := newSetUserPasswordHandler(Deps{Config: testConfig(t), Accounts: sys, Hostname: sys, Metadata: metadata.Null{}})

	require.NoError(t, h.Execute(ctx, nil))

	assert.Equal(t, "gggggggggggggggggggg", sys.users["admin"])
	pw, _ := ctx.Session.Get(cloudconfig.KeyPassword)
	assert.Equal(t, sys.users["admin"], pw)
	_, posted := ctx.Session.Get(cloudconfig.KeyPasswordPosted)
	assert.False(t, posted)
	assert.True(t, logs.contains("cannot set the password in the metadata as it is not supported by this service"))
	for _, line := range logs.lines {
		assert.NotContains(t, line, pw, "plaintext must never be logged")
	}
}

func TestSetUserPassword_InjectsAndPublishes(t *testing.T) {
	t.Parallel()
	ctx, logs := newTestContext(t)
	priv, key := newKeyPair(t)
	sys := newFakeOS("admin")
	svc := &postingService{adminPassword: "Passw0rd!", keys: []string{key}}
	h := newSetUserPasswordHandler(Deps{Config: testConfig(t), Accounts: sys, Hostname: sys, Metadata: svc})

	require.NoError(t, h.Execute(ctx, nil))

	assert.Equal(t, "Passw0rd!", sys.users["admin"])
	assert.Zero(t, sys.generated)
	require.Len(t, svc.posted, 1)
	plain, err := password.DecryptPassword(priv, svc.posted[0])
	require.NoError(t, err)
	assert.Equal(t, "Passw0rd!", plain)

	v, ok := ctx.Session.Get(cloudconfig.KeyPasswordPosted)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
	for _, line := range logs.lines {
		assert.NotContains(t, line, "Passw0rd!")
	}

	// The same handler never posts twice in one run.
	require.NoError(t, h.Execute(ctx, nil))
	assert.Len(t, svc.posted, 1)
}

func TestSetUserPassword_ReusesUsersPassword(t *testing.T) {
	t.Parallel()
	ctx, _ := newTestContext(t)
	sys := newFakeOS()
	deps := Deps{Config: testConfig(t), Accounts: sys, Hostname: sys, Metadata: metadata.Null{}}
	deps.Config.InjectUserPassword = false

	require.NoError(t, (&usersHandler{deps: deps}).Execute(ctx, []any{map[string]any{"name": "ops", "primary": true}}))
	generated := sys.generated
	require.NoError(t, newSetUserPasswordHandler(deps).Execute(ctx, nil))

	assert.Equal(t, generated, sys.generated, "password from users is reused")
	name, _ := ctx.Session.Get(cloudconfig.KeyUsername)
	assert.Equal(t, "ops", name, "username comes from the session")
}

func TestSetUserPassword_UsernamePrecedence(t *testing.T) {
	t.Parallel()
	sys := newFakeOS()
	h := newSetUserPasswordHandler(Deps{Config: testConfig(t), Accounts: sys, Hostname: sys, Metadata: metadata.Null{}})

	ctx, _ := newTestContext(t)
	require.NoError(t, ctx.Session.Set(cloudconfig.KeyUsername, "ops"))

	name, err := h.username(ctx, map[string]any{"username": "root"})
	require.NoError(t, err)
	assert.Equal(t, "root", name)

	name, err = h.username(ctx, "backup")
	require.NoError(t, err)
	assert.Equal(t, "backup", name)

	name, err = h.username(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "ops", name)

	fresh, _ := newTestContext(t)
	name, err = h.username(fresh, nil)
	require.NoError(t, err)
	assert.Equal(t, "admin", name)

	_, err = h.username(fresh, []any{"x"})
	assert.Error(t, err)
}

func TestSetUserPassword_MissingUser(t *testing.T) {
	t.Parallel()
	ctx, logs := newTestContext(t)
	sys := newFakeOS()
	h := newSetUserPasswordHandler(Deps{Config: testConfig(t), Accounts: sys, Hostname: sys, Metadata: metadata.Null{}})

	require.NoError(t, h.Execute(ctx, nil))
	assert.Empty(t, sys.users)
	assert.Zero(t, sys.generated)
	assert.True(t, logs.contains("user does not exist"))
}

func TestSetUserPassword_AlreadySetInMetadata(t *testing.T) {
	t.Parallel()
	ctx, logs := newTestContext(t)
	_, key := newKeyPair(t)
	sys := newFakeOS("admin")
	svc := &postingService{keys: []string{key}, passwordSet: true}
	h := newSetUserPasswordHandler(Deps{Config: testConfig(t), Accounts: sys, Hostname: sys, Metadata: svc})

	require.NoError(t, h.Execute(ctx, nil))
	assert.Empty(t, svc.posted)
	assert.True(t, logs.contains("password already set in the instance metadata"))
	_, ok := ctx.Session.Get(cloudconfig.KeyPasswordPosted)
	assert.False(t, ok, "nothing was posted")
}

func TestSetUserPassword_NoPublicKeyIsNotPosted(t *testing.T) {
	t.Parallel()
	ctx, logs := newTestContext(t)
	sys := newFakeOS("admin")
	svc := &postingService{}
	h := newSetUserPasswordHandler(Deps{Config: testConfig(t), Accounts: sys, Hostname: sys, Metadata: svc})

	require.NoError(t, h.Execute(ctx, nil))
	assert.Empty(t, svc.posted)
	assert.True(t, logs.contains("no SSH public key available"))
	_, ok := ctx.Session.Get(cloudconfig.KeyPasswordPosted)
	assert.False(t, ok)
	_, ok = ctx.Session.Get(cloudconfig.KeyPassword)
	assert.True(t, ok)
}
