package grab_test

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/xremap/internal/grab"
	"github.com/Alia5/xremap/internal/keys"
	"github.com/Alia5/xremap/internal/rules"
	th "github.com/Alia5/xremap/internal/testing"
)

func mapping(tokens ...string) rules.Mapping {
	var bs []rules.Binding
	for _, tok := range tokens {
		bs = append(bs, rules.Binding{From: keys.MustParse(tok), To: rules.Action{keys.MustParse("Left")}})
	}
	return rules.NewMapping(bs...)
}

func TestDiff(t *testing.T) {
	cur := []keys.Key{keys.MustParse("C-b"), keys.MustParse("C-f"), keys.MustParse("C-a")}
	tgt := []keys.Key{keys.MustParse("C-f"), keys.MustParse("C-n"), keys.MustParse("C-e")}

	toUngrab, toGrab := grab.Diff(cur, tgt)
	assert.Equal(t, []keys.Key{keys.MustParse("C-a"), keys.MustParse("C-b")}, toUngrab)
	assert.Equal(t, []keys.Key{keys.MustParse("C-e"), keys.MustParse("C-n")}, toGrab)

	toUngrab, toGrab = grab.Diff(cur, cur)
	assert.Empty(t, toUngrab)
	assert.Empty(t, toGrab)
}

func TestApplyUngrabsBeforeGrabbing(t *testing.T) {
	g := th.NewMockGrabber()
	m := grab.New(g, th.Logger(t))

	m.Apply(mapping("C-b", "C-f"))
	g.Reset()

	res := m.Apply(mapping("C-f", "C-n"))
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"ungrab C-b", "grab C-n"}, g.Ops())
	assert.Equal(t, []keys.Key{keys.MustParse("C-f"), keys.MustParse("C-n")}, m.Grabbed())
	assert.Equal(t, 2, res.Calls())
}

func TestApplyIsIdempotent(t *testing.T) {
	g := th.NewMockGrabber()
	m := grab.New(g, th.Logger(t))

	target := mapping("C-b", "C-f", "M-w")
	first := m.Apply(target)
	assert.Equal(t, 3, first.Calls())

	g.Reset()
	second := m.Apply(target)
	assert.Zero(t, second.Calls())
	assert.Empty(t, g.Calls)
	assert.Equal(t, 3, m.Len())
}

func TestApplyCallOrderIsCanonical(t *testing.T) {
	g := th.NewMockGrabber()
	m := grab.New(g, th.Logger(t))

	m.Apply(mapping("M-w", "C-b", "C-a", "S-Left"))

	var got []keys.Key
	for _, c := range g.Calls {
		got = append(got, c.Key)
	}
	assert.Equal(t, m.Grabbed(), got)
}

func TestApplyWithGrabFailure(t *testing.T) {
	g := th.NewMockGrabber()
	logger, rec := th.NewRecordingLogger()
	m := grab.New(g, logger)

	var tokens []string
	for c := 'a'; c < 'a'+10; c++ {
		tokens = append(tokens, fmt.Sprintf("C-%c", c))
	}
	g.FailGrab[keys.MustParse("C-e")] = true

	res := m.Apply(mapping(tokens...))

	assert.Len(t, g.Calls, 10)
	assert.Equal(t, 9, m.Len())
	assert.False(t, m.IsGrabbed(keys.MustParse("C-e")))
	assert.True(t, m.IsGrabbed(keys.MustParse("C-d")))
	assert.Len(t, res.Grabbed, 9)

	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, grab.ErrGrab)
	assert.ErrorIs(t, res.Err, th.ErrRejected)
	var gerr *grab.GrabError
	require.True(t, errors.As(res.Err, &gerr))
	assert.Equal(t, grab.OpGrab, gerr.Op)
	assert.Equal(t, keys.MustParse("C-e"), gerr.Key)

	assert.Contains(t, rec.MessagesAt(slog.LevelInfo), "Grabbing 10 keys")
	assert.Equal(t, []string{"Failed to grab key"}, rec.MessagesAt(slog.LevelWarn))

	// the failed key is retried on the next transition that still wants it
	g.Reset()
	delete(g.FailGrab, keys.MustParse("C-e"))
	res = m.Apply(mapping(tokens...))
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"grab C-e"}, g.Ops())
	assert.Equal(t, 10, m.Len())
}

func TestApplyWithUngrabFailure(t *testing.T) {
	g := th.NewMockGrabber()
	m := grab.New(g, th.Logger(t))

	m.Apply(mapping("C-b", "C-f"))
	g.FailUngrab[keys.MustParse("C-b")] = true

	res := m.Apply(mapping("C-f"))
	require.Error(t, res.Err)
	var gerr *grab.GrabError
	require.ErrorAs(t, res.Err, &gerr)
	assert.Equal(t, grab.OpUngrab, gerr.Op)
	assert.False(t, m.IsGrabbed(keys.MustParse("C-b")))
	assert.Equal(t, []keys.Key{keys.MustParse("C-f")}, m.Grabbed())
}

func TestApplyLogsTargetSize(t *testing.T) {
	logger, rec := th.NewRecordingLogger()
	m := grab.New(th.NewMockGrabber(), logger)

	m.Apply(mapping("C-b", "C-f"))
	m.Apply(mapping("C-b", "C-f"))
	m.Apply(rules.NewMapping())

	assert.Equal(t, []string{"Grabbing 2 keys", "Grabbing 2 keys", "Grabbing 0 keys"}, rec.MessagesAt(slog.LevelInfo))
}

func TestRelease(t *testing.T) {
	g := th.NewMockGrabber()
	m := grab.New(g, th.Logger(t))

	m.Apply(mapping("C-b", "C-f", "C-a"))
	g.Reset()
	g.FailUngrab[keys.MustParse("C-f")] = true

	err := m.Release()
	require.Error(t, err)
	assert.Equal(t, []string{"ungrab C-a", "ungrab C-b", "ungrab C-f"}, g.Ops())
	assert.Zero(t, m.Len())

	g.Reset()
	require.NoError(t, m.Release())
	assert.Empty(t, g.Calls)
}
