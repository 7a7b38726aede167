package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore()

	s.Set("sid-1", KeyProfileData, `{"name":"x"}`)
	v, ok := s.Get("sid-1", KeyProfileData)
	require.True(t, ok)
	assert.Equal(t, `{"name":"x"}`, v)

	_, ok = s.Get("sid-2", KeyProfileData)
	assert.False(t, ok, "sessions are isolated")
}

func TestStoreJSONHelpers(t *testing.T) {
	s := NewStore()

	type doc struct {
		Completed int `json:"completed"`
	}
	require.NoError(t, s.SetJSON("sid", KeyProfileCompletion, doc{Completed: 3}))

	var out doc
	ok, err := s.GetJSON("sid", KeyProfileCompletion, &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, out.Completed)

	ok, err = s.GetJSON("sid", "missing", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreResetDropsSession(t *testing.T) {
	s := NewStore()
	s.Set("sid", KeyDeputationDetails, "[]")

	s.Reset("sid")

	_, ok := s.Get("sid", KeyDeputationDetails)
	assert.False(t, ok)
}

func TestPruneIdle(t *testing.T) {
	s := NewStore()
	s.Set("old", "k", "v")
	s.sessions["old"].touched = time.Now().Add(-2 * time.Hour)
	s.Set("fresh", "k", "v")

	removed := s.PruneIdle(time.Hour)

	assert.Equal(t, 1, removed)
	_, ok := s.Get("fresh", "k")
	assert.True(t, ok)
	_, ok = s.Get("old", "k")
	assert.False(t, ok)
}
