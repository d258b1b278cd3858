package snapshot

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Animator: "hero",
		Layers: []LayerSnapshot{
			{Name: "base", Weight: 1, LayerState: "crossfading", State: "idle", LocalTime: 0.5,
				DestState: "run", DestTime: 0.1, CrossFadeElapsed: 0.1, CrossFadeDuration: 0.25},
			{Name: "upper", Weight: 0.5, LayerState: "standby"},
		},
	}
}

func TestStore_MemoryMode(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Persistent())

	_, ok, err := s.Load("hero")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save("hero", sampleSnapshot()))
	got, ok, err := s.Load("hero")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSnapshot(), got)
}

func TestStore_RejectsBadKeys(t *testing.T) {
	s := NewStore()
	assert.Error(t, s.Save("", sampleSnapshot()))
	assert.Error(t, s.Save("../escape", sampleSnapshot()))
	_, _, err := s.Load("a/b")
	assert.Error(t, err)
}

func TestStore_Gdata(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")

	m, err := gdata.Open(gdata.Config{AppName: "oxy_anim_snapshot_test"})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}

	s := NewStore(WithManager(m), WithObject("test_animators"))
	assert.True(t, s.Persistent())

	_, ok, err := s.Load("hero")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save("hero", sampleSnapshot()))

	// A second store over the same manager sees the persisted data.
	reopened := NewStore(WithManager(m), WithObject("test_animators"))
	got, ok, err := reopened.Load("hero")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSnapshot(), got)
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := Unmarshal([]byte("layers: {"))
	assert.Error(t, err)
}
