package discord

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// ComponentEvent is a button press on a watched message
type ComponentEvent struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

// UserID returns the ID of the user who pressed the button
func (e ComponentEvent) UserID() string {
	if e.Interaction.Member != nil && e.Interaction.Member.User != nil {
		return e.Interaction.Member.User.ID
	}
	if e.Interaction.User != nil {
		return e.Interaction.User.ID
	}
	return ""
}

// CustomID returns the custom ID of the pressed button
func (e ComponentEvent) CustomID() string {
	return e.Interaction.MessageComponentData().CustomID
}

// Collector streams component interactions on one message into a channel.
// Close it when done or the session handler leaks.
type Collector struct {
	events chan ComponentEvent
	remove func()

	mu     sync.Mutex
	closed bool
}

// NewCollector watches a message for presses of the given custom IDs
func NewCollector(s *discordgo.Session, messageID string, customIDs ...string) *Collector {
	wanted := make(map[string]bool, len(customIDs))
	for _, id := range customIDs {
		wanted[id] = true
	}

	c := &Collector{
		events: make(chan ComponentEvent, 16),
	}

	c.remove = s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionMessageComponent {
			return
		}
		if i.Message == nil || i.Message.ID != messageID {
			return
		}
		if !wanted[i.MessageComponentData().CustomID] {
			return
		}
		c.dispatch(ComponentEvent{Session: s, Interaction: i})
	})

	return c
}

// Events returns the stream of matching presses
func (c *Collector) Events() <-chan ComponentEvent {
	return c.events
}

// Close detaches the collector from the session. Safe to call more than
// once.
func (c *Collector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.remove()
	close(c.events)
}

// dispatch forwards an event unless the collector is closed. A full
// buffer drops the press; the user can click again.
func (c *Collector) dispatch(ev ComponentEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.events <- ev:
	default:
	}
}
