// Package session holds the mutable state of one settings-editing
// session: the in-memory notification channel list and the editing
// cursor. It replaces the page-level globals the dashboard previously
// relied on; an Editor belongs to a single event-handling flow and is
// not safe for concurrent use.
package session

import (
	"fmt"
	"strings"

	"github.com/coopco/renewdash/internal/notify"
)

type Editor struct {
	channels  []notify.Channel
	editingID string
}

// NewEditor starts a session over a copy of the given channel list.
func NewEditor(channels []notify.Channel) *Editor {
	e := &Editor{channels: make([]notify.Channel, len(channels))}
	copy(e.channels, channels)
	return e
}

// Channels returns a copy of the current list in editing order.
func (e *Editor) Channels() []notify.Channel {
	out := make([]notify.Channel, len(e.channels))
	copy(out, e.channels)
	return out
}

// Find returns the channel with the given id.
func (e *Editor) Find(id string) (notify.Channel, bool) {
	for _, ch := range e.channels {
		if ch.ID == id {
			return ch, true
		}
	}
	return notify.Channel{}, false
}

// Edit opens the channel with the given id in the form.
func (e *Editor) Edit(id string) (notify.Channel, error) {
	ch, ok := e.Find(id)
	if !ok {
		return notify.Channel{}, fmt.Errorf("通知渠道不存在: %s", id)
	}
	e.editingID = id
	return ch, nil
}

// Cancel drops the editing cursor without touching the list.
func (e *Editor) Cancel() {
	e.editingID = ""
}

// EditingID returns the id of the channel currently open in the form,
// or empty when the form is creating a new channel.
func (e *Editor) EditingID() string {
	return e.editingID
}

// Save upserts the form result: with an editing cursor it replaces the
// matching channel in place, otherwise it appends a new channel with a
// fresh id. A blank name defaults to the channel type. The editing
// cursor is cleared either way.
func (e *Editor) Save(name string, t notify.Type, enabled bool, config map[string]any) notify.Channel {
	name = strings.TrimSpace(name)
	if name == "" {
		name = string(t)
	}
	if config == nil {
		config = map[string]any{}
	}
	ch := notify.Channel{
		ID:      e.editingID,
		Name:    name,
		Type:    t,
		Enabled: enabled,
		Config:  config,
	}
	if e.editingID != "" {
		for i := range e.channels {
			if e.channels[i].ID == e.editingID {
				e.channels[i] = ch
			}
		}
	} else {
		ch.ID = notify.NewID("")
		e.channels = append(e.channels, ch)
	}
	e.editingID = ""
	return ch
}

// Remove deletes the channel with the given id; unknown ids are a
// no-op.
func (e *Editor) Remove(id string) {
	kept := e.channels[:0]
	for _, ch := range e.channels {
		if ch.ID != id {
			kept = append(kept, ch)
		}
	}
	e.channels = kept
}

// Payload returns the list ready for persistence: nil configs become
// empty objects so the serialized form always carries a config field.
func (e *Editor) Payload() []notify.Channel {
	out := make([]notify.Channel, len(e.channels))
	copy(out, e.channels)
	for i := range out {
		if out[i].Config == nil {
			out[i].Config = map[string]any{}
		}
	}
	return out
}
