package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"listkeeper/internal/server/session"
)

func TestManagerDefaultState(t *testing.T) {
	m := session.NewManager()

	state := m.State("token")
	assert.Equal(t, session.ViewAllLists, state.View)
	assert.Empty(t, state.SelectedListID)
	assert.Empty(t, state.PendingItems)
}

func TestManagerSelectAndBack(t *testing.T) {
	m := session.NewManager()

	state := m.Select("token", "list42")
	assert.Equal(t, session.ViewSingleList, state.View)
	assert.Equal(t, "list42", state.SelectedListID)

	state = m.Back("token")
	assert.Equal(t, session.ViewAllLists, state.View)
	assert.Empty(t, state.SelectedListID)
}

func TestManagerOpenExtractionKeepsSelection(t *testing.T) {
	m := session.NewManager()

	m.Select("token", "list42")
	state := m.OpenExtraction("token")
	assert.Equal(t, session.ViewExtraction, state.View)
	assert.Equal(t, "list42", state.SelectedListID)
}

func TestManagerPendingLifecycle(t *testing.T) {
	m := session.NewManager()

	m.SetPending("token", []string{"Milk", "Eggs"})
	assert.Equal(t, []string{"Milk", "Eggs"}, m.Pending("token"))

	m.ClearPending("token")
	assert.Empty(t, m.Pending("token"))
}

func TestManagerPendingIsCopied(t *testing.T) {
	m := session.NewManager()

	items := []string{"Milk"}
	m.SetPending("token", items)
	items[0] = "mutated"
	assert.Equal(t, []string{"Milk"}, m.Pending("token"))

	pending := m.Pending("token")
	pending[0] = "mutated"
	assert.Equal(t, []string{"Milk"}, m.Pending("token"))
}

func TestManagerIsolatesSessions(t *testing.T) {
	m := session.NewManager()

	m.Select("alice", "list42")
	assert.Equal(t, session.ViewAllLists, m.State("bob").View)
}
