package session

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-dashboard/internal/models"
)

func TestSaveAndClear(t *testing.T) {
	s := New(State{})
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())

	require.NoError(t, s.Save("tok", models.User{ID: 1, Email: "a@b.co", Name: "a"}))
	assert.Equal(t, "tok", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, "a@b.co", s.User().Email)

	cleared, err := s.Clear()
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Empty(t, s.Token())

	cleared, err = s.Clear()
	require.NoError(t, err)
	assert.False(t, cleared, "second clear is a no-op")
}

func TestUserIsACopy(t *testing.T) {
	s := New(State{Token: "tok", User: &models.User{Name: "orig"}})
	u := s.User()
	u.Name = "changed"
	assert.Equal(t, "orig", s.User().Name)
}

func TestSubscribe(t *testing.T) {
	s := New(State{})
	var seen []State
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st) })

	require.NoError(t, s.Save("tok", models.User{ID: 7}))
	_, err := s.Clear()
	require.NoError(t, err)
	_, err = s.Clear()
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.True(t, seen[0].SignedIn())
	assert.False(t, seen[1].SignedIn())

	unsubscribe()
	require.NoError(t, s.Save("again", models.User{}))
	assert.Len(t, seen, 2)
}

func TestConcurrentClearNotifiesOnce(t *testing.T) {
	s := New(State{Token: "tok"})
	var notified, cleared atomic.Int32
	s.Subscribe(func(State) { notified.Add(1) })

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.Clear(); ok {
				cleared.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), cleared.Load())
	assert.Equal(t, int32(1), notified.Load())
}

func TestOpenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := Open(path)
	require.NoError(t, err)
	assert.False(t, s.State().SignedIn())

	require.NoError(t, s.Save("tok", models.User{ID: 3, Email: "c@d.io", Name: "c"}))
	assert.FileExists(t, path)

	restored, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", restored.Token())
	assert.Equal(t, int64(3), restored.User().ID)

	_, err = restored.Clear()
	require.NoError(t, err)
	assert.NoFileExists(t, path)
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode session file")
}
