package xsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BuildsTreeInDeclarationOrder(t *testing.T) {
	b := NewBuilder[TestEntity]("Root", nil, WithRegions()).
		State("Movement", nil).
		State("Movement/OnGround", nil).
		State("Movement/OnGround/Idle", nil).
		State("/Movement/OnGround/Walk/", nil).
		State("Colors", nil)

	m, err := b.Build(&TestEntity{})
	require.NoError(t, err)
	assert.False(t, m.IsInitialized())

	root := b.Root()
	assert.True(t, root.HasRegions())
	require.Len(t, root.Children(), 2)
	assert.Equal(t, "Movement", root.Children()[0].Name())

	ground := b.Lookup("Movement/OnGround")
	require.NotNil(t, ground)
	names := []string{}
	for _, c := range ground.Children() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"Idle", "Walk"}, names)
	assert.Equal(t, root, b.Lookup(""))
	assert.Nil(t, b.Lookup("Movement/InAir"))

	require.NoError(t, m.Init())
	assert.Equal(t, []string{"Colors", "Idle", "Movement", "OnGround"}, m.ActiveStateNames())
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder[TestEntity]) *Builder[TestEntity]
	}{
		{
			name: "declared twice",
			build: func(b *Builder[TestEntity]) *Builder[TestEntity] {
				return b.State("A", nil).State("A", nil)
			},
		},
		{
			name: "empty path",
			build: func(b *Builder[TestEntity]) *Builder[TestEntity] {
				return b.State("/", nil)
			},
		},
		{
			name: "root name reused",
			build: func(b *Builder[TestEntity]) *Builder[TestEntity] {
				return b.State("A", nil).State("A/Root", nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.build(NewBuilder[TestEntity]("Root", nil)).Build(&TestEntity{})
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, IsConfigurationError(err))
			assert.Equal(t, ErrCodeInvalidConfiguration, GetErrorCode(err))
		})
	}
}

func TestBuilder_MissingParent(t *testing.T) {
	m, err := NewBuilder[TestEntity]("Root", nil).
		State("Missing/Child", nil).
		Build(&TestEntity{})

	require.Error(t, err)
	assert.Nil(t, m)
	assert.True(t, IsStateError(err))
	assert.Equal(t, ErrCodeStateNotFound, GetErrorCode(err))
	assert.EqualError(t, err, "declare Missing/Child: parent state error [Missing]: state 'Missing' not found")
}

func TestBuilder_CollectsEveryError(t *testing.T) {
	_, err := NewBuilder[TestEntity]("Root", nil).
		State("X/Y", nil).
		State("", nil).
		Build(&TestEntity{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "state 'X' not found")
	assert.Contains(t, err.Error(), "state path cannot be empty")
}

func TestBuilder_MachineOptions(t *testing.T) {
	observer := NewTestObserver()
	m, err := CreateSimpleTree(nil).Build(&TestEntity{}, WithHistorySize(4), WithObserver(observer), WithSyncMode(SyncPhysics))
	require.NoError(t, err)
	require.NoError(t, m.Init())

	assert.Equal(t, 4, m.History().Size())
	assert.Equal(t, SyncPhysics, m.SyncMode())
	assert.NotEmpty(t, observer.Entered)
}
