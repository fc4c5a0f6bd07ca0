package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/playring/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/logger"
	"github.com/tejashwikalptaru/playring/internal/service"
)

func runScript(t *testing.T, script string) string {
	t.Helper()
	log := logger.NewTestLogger()
	bus := eventbus.NewSyncEventBus(log)
	t.Cleanup(func() { _ = bus.Close() })

	playlist, err := service.NewPlaylistService(domain.ImplCircular, nil, bus, log)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewMenu(playlist, strings.NewReader(script), &out).Run(context.Background()))
	return out.String()
}

func TestMenu_Session(t *testing.T) {
	script := strings.Join([]string{
		"7",
		"3",
		"1", "Bohemian Rhapsody", "Queen", "354",
		"1", "Imagine", "John Lennon", "abc",
		"3",
		"4",
		"6", "1",
		"8",
		"6", "x",
		"6", "9",
		"9",
		"2", "7",
		"10",
		"7",
		"42",
		"0",
	}, "\n") + "\n"

	out := runScript(t, script)

	assert.True(t, strings.HasPrefix(out, "Initialized with Circular playlist. Use option 10 to switch.\n"))
	assert.Contains(t, out, "=== Circular Music Playlist ===")
	assert.Contains(t, out, "10. Switch playlist implementation (Circular/List)")

	for _, want := range []string{
		"No songs",
		"Playing: <no song>",
		"Added: Bohemian Rhapsody - Queen 05:54 (id=1)",
		"Added: Imagine - John Lennon (id=2)",
		"Playing: Bohemian Rhapsody - Queen 05:54",
		"Next: Imagine - John Lennon",
		"Enqueued",
		"Invalid id",
		"Song not found",
		"Switched to List playlist",
		"Invalid choice",
		"Bye!",
	} {
		assert.Contains(t, out, want)
	}

	// queue and history both list song 1
	assert.Equal(t, 2, strings.Count(out, "- Bohemian Rhapsody - Queen 05:54 (id=1)"))
	// the list engine starts empty
	assert.Equal(t, 2, strings.Count(out, "No songs"))
}

func TestMenu_RemoveAndEmptyListings(t *testing.T) {
	out := runScript(t, "1\nA\nX\n\n2\n1\n8\n9\n0\n")

	assert.Contains(t, out, "Added: A - X (id=1)")
	assert.Contains(t, out, "Removed")
	assert.Contains(t, out, "Queue empty")
	assert.Contains(t, out, "History empty")
}

func TestMenu_EmptyTitleRejected(t *testing.T) {
	out := runScript(t, "1\n\nSomeone\n\n7\n0\n")

	assert.Contains(t, out, "Error: ")
	assert.Contains(t, out, "title")
	assert.Contains(t, out, "No songs")
}

func TestMenu_EOF(t *testing.T) {
	out := runScript(t, "")
	assert.True(t, strings.HasSuffix(out, "Select an option: \nBye!\n"))

	// End of input in the middle of adding a song also exits
	out = runScript(t, "1\nHalf\n")
	assert.True(t, strings.HasSuffix(out, "Artist: \nBye!\n"))
	assert.NotContains(t, out, "Added:")
}

func TestDisplayImpl(t *testing.T) {
	assert.Equal(t, "Circular", displayImpl(domain.ImplCircular))
	assert.Equal(t, "List", displayImpl(domain.ImplList))
	assert.Equal(t, "", displayImpl(""))
}
