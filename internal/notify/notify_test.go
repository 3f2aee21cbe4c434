package notify

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObject struct {
	method string
	args   [][]any
	reply  uint32
	err    error
}

func (f *fakeObject) Call(method string, _ dbus.Flags, args ...any) *dbus.Call {
	f.method = method
	f.args = append(f.args, args)
	if f.err != nil {
		return &dbus.Call{Err: f.err}
	}
	f.reply++
	return &dbus.Call{Body: []any{f.reply}}
}

func TestDBusNotify(t *testing.T) {
	obj := &fakeObject{reply: 40}
	n := &dbusNotifier{obj: obj, urgency: UrgencyCritical, timeout: 5000}

	require.NoError(t, n.Notify("xremap: rules not reloaded", "windows[0].remaps[1].to: unknown key name"))
	require.NoError(t, n.Notify("xremap: rules not reloaded", "again"))

	assert.Equal(t, "org.freedesktop.Notifications.Notify", obj.method)
	require.Len(t, obj.args, 2)
	first := obj.args[0]
	assert.Equal(t, "xremap", first[0])
	assert.Equal(t, uint32(0), first[1])
	assert.Equal(t, "xremap: rules not reloaded", first[3])
	assert.Equal(t, int32(5000), first[7])
	hints := first[6].(map[string]dbus.Variant)
	assert.Equal(t, byte(UrgencyCritical), hints["urgency"].Value())

	// the second notification replaces the first
	assert.Equal(t, uint32(41), obj.args[1][1])
	assert.Equal(t, uint32(42), n.lastID)
}

func TestDBusNotifyError(t *testing.T) {
	n := &dbusNotifier{obj: &fakeObject{err: errors.New("no such name")}}
	err := n.Notify("a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such name")
	assert.NoError(t, n.Close())
}

func TestNop(t *testing.T) {
	n := Nop()
	assert.NoError(t, n.Notify("a", "b"))
	assert.NoError(t, n.Close())
}
