package playlist

import (
	"iter"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/playring/internal/domain"
)

// forEachEngine runs fn against a fresh instance of both variants.
func forEachEngine(t *testing.T, fn func(t *testing.T, e Engine)) {
	t.Helper()
	for _, kind := range []domain.Implementation{domain.ImplCircular, domain.ImplList} {
		t.Run(string(kind), func(t *testing.T) {
			e, err := New(kind)
			require.NoError(t, err)
			fn(t, e)
		})
	}
}

func addTitles(e Engine, titles ...string) []*domain.Song {
	songs := make([]*domain.Song, 0, len(titles))
	for _, title := range titles {
		songs = append(songs, e.AddSong(domain.SongInput{Title: title, Artist: "Artist"}))
	}
	return songs
}

func collectIDs(seq iter.Seq[*domain.Song]) []domain.SongID {
	var ids []domain.SongID
	for s := range seq {
		ids = append(ids, s.ID)
	}
	return ids
}

func titleOf(s *domain.Song) string {
	if s == nil {
		return ""
	}
	return s.Title
}

func TestNew_UnknownImplementation(t *testing.T) {
	_, err := New("shuffle")
	assert.ErrorIs(t, err, domain.ErrUnknownImplementation)
}

func TestEngine_EmptyState(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		assert.Nil(t, e.Play())
		assert.Nil(t, e.Next())
		assert.Nil(t, e.Previous())
		assert.False(t, e.EnqueueNext(1))
		assert.False(t, e.RemoveSong(1))
		assert.Empty(t, collectIDs(e.ListSongs()))
		assert.Empty(t, collectIDs(e.History()))
		assert.Equal(t, 0, e.Len())
	})
}

func TestEngine_ConcreteScenario(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		songs := addTitles(e, "A", "B", "C")
		require.Equal(t, []domain.SongID{1, 2, 3}, []domain.SongID{songs[0].ID, songs[1].ID, songs[2].ID})

		assert.Equal(t, "A", titleOf(e.Play()))

		assert.Equal(t, "B", titleOf(e.Next()))
		assert.Equal(t, []domain.SongID{1}, collectIDs(e.History()))

		assert.Equal(t, "C", titleOf(e.Next()))
		assert.Equal(t, []domain.SongID{2, 1}, collectIDs(e.History()))

		assert.True(t, e.EnqueueNext(1))
		assert.Equal(t, []domain.SongID{1}, collectIDs(e.UpNext()))

		assert.Equal(t, "A", titleOf(e.Next()))
		assert.Equal(t, []domain.SongID{3, 2, 1}, collectIDs(e.History()))
		assert.Empty(t, collectIDs(e.UpNext()))

		assert.Equal(t, "C", titleOf(e.Previous()))
		assert.Equal(t, "C", titleOf(e.Play()))
	})
}

func TestEngine_IDsAreMonotonic(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		a := e.AddSong(domain.SongInput{Title: "A"})
		require.True(t, e.RemoveSong(a.ID))
		b := e.AddSong(domain.SongInput{Title: "B"})
		c := e.AddSong(domain.SongInput{Title: "C"})

		assert.Equal(t, domain.SongID(1), a.ID)
		assert.Equal(t, domain.SongID(2), b.ID)
		assert.Equal(t, domain.SongID(3), c.ID)
	})
}

func TestEngine_FirstAddActivates(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A")
		assert.Equal(t, "A", titleOf(e.Play()))

		addTitles(e, "B")
		assert.Equal(t, "A", titleOf(e.Play()), "later adds leave the cursor alone")
	})
}

func TestEngine_NextWrapsAround(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B", "C")
		assert.Equal(t, "B", titleOf(e.Next()))
		assert.Equal(t, "C", titleOf(e.Next()))
		assert.Equal(t, "A", titleOf(e.Next()))
	})
}

func TestEngine_PreviousWithoutHistoryStepsBack(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B", "C")
		assert.Equal(t, "C", titleOf(e.Previous()))
		assert.Equal(t, "B", titleOf(e.Previous()))
		assert.Empty(t, collectIDs(e.History()), "backward steps do not record history")
	})
}

func TestEngine_NextThenPreviousIsInverse(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B", "C", "D")
		e.Next()
		before := e.Play()

		e.Next()
		assert.Same(t, before, e.Previous())
		assert.Same(t, before, e.Play())
	})
}

func TestEngine_UpNextHasPriority(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B", "C", "D")
		require.True(t, e.EnqueueNext(4))
		require.True(t, e.EnqueueNext(3))

		assert.Equal(t, "D", titleOf(e.Next()))
		assert.Equal(t, "C", titleOf(e.Next()))
	})
}

func TestEngine_EnqueueUnknown(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A")
		assert.False(t, e.EnqueueNext(42))
		assert.Empty(t, collectIDs(e.UpNext()))
	})
}

func TestEngine_RemoveCurrentAdvances(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B", "C")
		require.True(t, e.RemoveSong(1))

		cur := e.Play()
		require.NotNil(t, cur)
		assert.Equal(t, "B", cur.Title)
		assert.True(t, e.Contains(cur.ID))
		assert.Equal(t, []domain.SongID{2, 3}, collectIDs(e.ListSongs()))
	})
}

func TestEngine_RemoveLastSongEmpties(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A")
		require.True(t, e.RemoveSong(1))

		assert.Nil(t, e.Play())
		assert.Empty(t, collectIDs(e.ListSongs()))
		assert.Equal(t, 0, e.Len())

		// The engine becomes active again on the next add.
		addTitles(e, "B")
		assert.Equal(t, "B", titleOf(e.Play()))
	})
}

func TestEngine_RemoveOtherKeepsCursor(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B", "C", "D")
		e.Next()
		e.Next()
		require.Equal(t, "C", titleOf(e.Play()))

		require.True(t, e.RemoveSong(1))
		assert.Equal(t, "C", titleOf(e.Play()))
		require.True(t, e.RemoveSong(4))
		assert.Equal(t, "C", titleOf(e.Play()))
	})
}

func TestEngine_RemoveUnknown(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B")
		assert.False(t, e.RemoveSong(9))
		assert.Equal(t, 2, e.Len())
	})
}

func TestEngine_DequeuedRemovedSongIsAppended(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B", "C")
		require.True(t, e.EnqueueNext(2))
		require.True(t, e.RemoveSong(2))
		assert.False(t, e.Contains(2))

		assert.Equal(t, "B", titleOf(e.Next()))
		assert.Equal(t, "B", titleOf(e.Play()))
		assert.Equal(t, []domain.SongID{1, 3, 2}, collectIDs(e.ListSongs()))
	})
}

func TestEngine_PreviousSkipsRemovedHistory(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B", "C")
		e.Next()
		require.True(t, e.RemoveSong(1))

		// A is gone, so previous steps back from B instead.
		assert.Equal(t, "C", titleOf(e.Previous()))
		assert.Empty(t, collectIDs(e.History()))
	})
}

func TestEngine_RemovedSongStillResolves(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B")
		e.Next()
		require.True(t, e.RemoveSong(1))

		s, ok := e.Song(1)
		require.True(t, ok)
		assert.Equal(t, "A", s.Title)
		assert.Equal(t, []domain.SongID{1}, collectIDs(e.History()))

		_, ok = e.Song(99)
		assert.False(t, ok)
	})
}

func TestEngine_SharedRecords(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B")
		e.Next()
		require.True(t, e.EnqueueNext(1))

		require.True(t, e.SetAudioURL(1, "https://example.com/a.mp3"))
		assert.False(t, e.SetAudioURL(7, "x"))

		for s := range e.History() {
			assert.Equal(t, "https://example.com/a.mp3", s.AudioURL)
		}
		for s := range e.UpNext() {
			assert.Equal(t, "https://example.com/a.mp3", s.AudioURL)
		}
		a, _ := e.Song(1)
		assert.Same(t, a, e.Next())
	})
}

func TestEngine_ListSongsIsRestartable(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		addTitles(e, "A", "B", "C")
		seq := e.ListSongs()
		assert.Equal(t, []domain.SongID{1, 2, 3}, collectIDs(seq))
		assert.Equal(t, []domain.SongID{1, 2, 3}, collectIDs(seq))

		n := 0
		for range seq {
			n++
			break
		}
		assert.Equal(t, 1, n)
	})
}

func TestEngine_CursorAlwaysLive(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e Engine) {
		rng := rand.New(rand.NewPCG(7, 11))
		for step := range 500 {
			switch rng.IntN(5) {
			case 0:
				e.AddSong(domain.SongInput{Title: "S"})
			case 1:
				e.RemoveSong(domain.SongID(rng.IntN(40) + 1))
			case 2:
				e.Next()
			case 3:
				e.Previous()
			case 4:
				e.EnqueueNext(domain.SongID(rng.IntN(40) + 1))
			}
			if cur := e.Play(); cur != nil {
				assert.Contains(t, collectIDs(e.ListSongs()), cur.ID, "step %d", step)
			} else {
				assert.Equal(t, 0, e.Len(), "step %d", step)
			}
		}
	})
}

func TestEquivalence_Script(t *testing.T) {
	run := func(e Engine) []string {
		var out []string
		addTitles(e, "A", "B", "C")
		out = append(out, titleOf(e.Play()))
		out = append(out, titleOf(e.Next()))
		out = append(out, titleOf(e.Next()))
		if e.EnqueueNext(1) {
			out = append(out, "enqueued")
		}
		out = append(out, titleOf(e.Next()))
		if e.RemoveSong(2) {
			out = append(out, "removed")
		}
		out = append(out, titleOf(e.Play()))
		out = append(out, titleOf(e.Previous()))
		out = append(out, titleOf(e.Play()))
		return out
	}

	ring := run(NewRing())
	flat := run(NewFlat())
	assert.Equal(t, []string{"A", "B", "C", "enqueued", "A", "removed", "A", "C", "C"}, ring)
	assert.Equal(t, ring, flat)
}

// Without up-next the flat sequence never holds duplicates, so both variants
// must agree on every observable after every step.
func TestEquivalence_RandomScripts(t *testing.T) {
	for seed := range uint64(20) {
		ring, flat := NewRing(), NewFlat()
		rng := rand.New(rand.NewPCG(seed, seed*31+1))

		for step := range 300 {
			var r, f *domain.Song
			switch op := rng.IntN(4); op {
			case 0:
				in := domain.SongInput{Title: "S", DurationSec: rng.IntN(300)}
				r, f = ring.AddSong(in), flat.AddSong(in)
			case 1:
				id := domain.SongID(rng.IntN(30) + 1)
				require.Equal(t, ring.RemoveSong(id), flat.RemoveSong(id), "seed %d step %d", seed, step)
			case 2:
				r, f = ring.Next(), flat.Next()
			case 3:
				r, f = ring.Previous(), flat.Previous()
			}

			require.Equal(t, idOrZero(r), idOrZero(f), "seed %d step %d", seed, step)
			require.Equal(t, idOrZero(ring.Play()), idOrZero(flat.Play()), "seed %d step %d", seed, step)
			require.Equal(t, collectIDs(ring.ListSongs()), collectIDs(flat.ListSongs()), "seed %d step %d", seed, step)
			require.Equal(t, collectIDs(ring.History()), collectIDs(flat.History()), "seed %d step %d", seed, step)
		}
	}
}

func idOrZero(s *domain.Song) domain.SongID {
	if s == nil {
		return 0
	}
	return s.ID
}

func TestEngine_RemoveCurrentSongQueuedAsItself(t *testing.T) {
	tests := []struct {
		name     string
		titles   []string
		advance  int
		remove   domain.SongID
		wantPlay string
		wantList []domain.SongID
	}{
		{name: "first", titles: []string{"A", "B", "C"}, remove: 1, wantPlay: "B", wantList: []domain.SongID{2, 3}},
		{name: "middle", titles: []string{"A", "B", "C"}, advance: 1, remove: 2, wantPlay: "C", wantList: []domain.SongID{1, 3}},
		{name: "last wraps", titles: []string{"A", "B", "C"}, advance: 2, remove: 3, wantPlay: "A", wantList: []domain.SongID{1, 2}},
		{name: "only song", titles: []string{"A"}, remove: 1, wantPlay: "", wantList: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forEachEngine(t, func(t *testing.T, e Engine) {
				addTitles(e, tt.titles...)
				for range tt.advance {
					e.Next()
				}
				require.True(t, e.EnqueueNext(tt.remove))

				// Removing the current song dequeues it again, so the cursor
				// has to leave it afterwards.
				require.True(t, e.RemoveSong(tt.remove))
				assert.Equal(t, tt.wantPlay, titleOf(e.Play()))
				assert.Equal(t, tt.wantList, collectIDs(e.ListSongs()))
				assert.Empty(t, collectIDs(e.UpNext()))
			})
		})
	}
}

func TestFlat_DequeueAppendsDuplicate(t *testing.T) {
	e := NewFlat()
	addTitles(e, "A", "B")
	require.True(t, e.EnqueueNext(1))

	assert.Equal(t, "A", titleOf(e.Next()))
	assert.Equal(t, []domain.SongID{1, 2, 1}, collectIDs(e.ListSongs()))
	assert.Equal(t, 3, e.Len())
}
