package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/Alia5/xremap/internal/keys"
	"github.com/Alia5/xremap/internal/remap"
)

// ErrSlotTaken is returned by Grab when another key already owns the same
// keycode and modifier mask.
var ErrSlotTaken = errors.New("key grab slot already taken")

// Grab grabs k on the root window, once per lock-key variant. If any
// variant fails the ones already made are released again.
func (c *Conn) Grab(k keys.Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.grabbed[k]; ok {
		return nil
	}
	code, err := c.keymap.Keycode(k.Sym)
	if err != nil {
		return err
	}
	mask := ToMask(k.Mods)
	if err := claimable(c.slots, slot{code: code, mask: mask}, k); err != nil {
		return err
	}
	for i, lock := range lockVariants {
		err := xproto.GrabKeyChecked(c.conn, true, c.root, mask|lock, code,
			xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
		if err != nil {
			for _, done := range lockVariants[:i] {
				_ = xproto.UngrabKeyChecked(c.conn, code, c.root, mask|done).Check()
			}
			return fmt.Errorf("grab keycode %d mask %#x: %w", code, mask|lock, err)
		}
	}
	c.grabbed[k] = code
	c.slots[slot{code: code, mask: mask}] = k
	return nil
}

// Ungrab releases every variant grabbed for k, using the keycode it was
// grabbed with.
func (c *Conn) Ungrab(k keys.Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	code, ok := c.grabbed[k]
	if !ok {
		return nil
	}
	delete(c.grabbed, k)
	mask := ToMask(k.Mods)
	if s := (slot{code: code, mask: mask}); c.slots[s] == k {
		delete(c.slots, s)
	}

	var errs []error
	for _, lock := range lockVariants {
		if err := xproto.UngrabKeyChecked(c.conn, code, c.root, mask|lock).Check(); err != nil {
			errs = append(errs, fmt.Errorf("ungrab keycode %d mask %#x: %w", code, mask|lock, err))
		}
	}
	return errors.Join(errs...)
}

// claimable fails when s already belongs to a different key. Two keys
// resolving to one keycode and mask would share a single X grab.
func claimable(slots map[slot]keys.Key, s slot, k keys.Key) error {
	if owner, ok := slots[s]; ok && owner != k {
		return fmt.Errorf("%w: keycode %d mask %#x is held by %s", ErrSlotTaken, s.code, s.mask, owner)
	}
	return nil
}

// Translate maps a key press back to the grabbed key it fired for.
func (c *Conn) Translate(ev xproto.KeyPressEvent) (remap.KeyPress, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return translate(c.slots, ev)
}

// pressedKey names the key behind an event using the current keymap.
func (c *Conn) pressedKey(ev xproto.KeyPressEvent) keys.Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	return keys.New(c.keymap.Keysym(ev.Detail), FromMask(ev.State))
}

func translate(slots map[slot]keys.Key, ev xproto.KeyPressEvent) (remap.KeyPress, bool) {
	k, ok := slots[slot{code: ev.Detail, mask: CleanState(ev.State)}]
	if !ok {
		return remap.KeyPress{}, false
	}
	return remap.KeyPress{Key: k, Keycode: uint8(ev.Detail), State: ev.State}, true
}
