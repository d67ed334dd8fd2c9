// Package chat runs the conversational side of PlantCare.
//
// A Session keeps an append-only message history, routes each question to
// one intent with a fixed keyword table and answers it with the advisor,
// using the latest telemetry snapshot and the current active plant.
package chat

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/HendryAvila/plantcare/internal/advisor"
	"github.com/HendryAvila/plantcare/internal/plants"
	"github.com/HendryAvila/plantcare/internal/telemetry"
	"github.com/google/uuid"
)

// Message is one entry in the conversation. Never mutated once appended.
type Message struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	IsFromUser bool      `json:"is_from_user"`
	Timestamp  time.Time `json:"timestamp"`
}

// SnapshotSource supplies the latest sensor reading.
type SnapshotSource interface {
	Latest() telemetry.Snapshot
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the time source for message timestamps and the
// watering schedule.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator replaces the message ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Session) { s.newID = gen }
}

// Session is one conversation.
type Session struct {
	source SnapshotSource
	now    func() time.Time
	newID  func() string

	mu       sync.Mutex
	messages []Message
	plant    *plants.Plant
}

// NewSession creates a Session with an empty history and no plant.
func NewSession(source SnapshotSource, opts ...Option) *Session {
	s := &Session{
		source: source,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start resets the history to a single welcome message.
func (s *Session) Start(plant *plants.Plant) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.plant = clonePlant(plant)
	s.messages = nil
	return s.appendLocked(welcomeText(s.plant), false)
}

// SetPlant refreshes the active-plant snapshot. When a different plant
// becomes active a confirmation message is appended and returned.
func (s *Session) SetPlant(plant *plants.Plant) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.plant
	s.plant = clonePlant(plant)
	if plant == nil || (prev != nil && prev.ID == plant.ID) {
		return Message{}, false
	}
	text := fmt.Sprintf("✅ Got it! I'll now give advice specific to %q based on your live sensor data.", plant.Name)
	return s.appendLocked(text, false), true
}

// Plant returns the current active-plant snapshot, or nil.
func (s *Session) Plant() *plants.Plant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePlant(s.plant)
}

// Ask records the user's question and returns the assistant's answer.
func (s *Session) Ask(text string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendLocked(text, true)

	var snap telemetry.Snapshot
	if s.source != nil {
		snap = s.source.Latest()
	}
	in := advisor.NewInput(ResolveIntent(text), snap, s.plant, s.now())
	return s.appendLocked(advisor.Render(in), false)
}

// Messages returns a copy of the history.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

func (s *Session) appendLocked(text string, fromUser bool) Message {
	m := Message{
		ID:         s.newID(),
		Text:       text,
		IsFromUser: fromUser,
		Timestamp:  s.now().UTC(),
	}
	s.messages = append(s.messages, m)
	return m
}

func welcomeText(plant *plants.Plant) string {
	var b strings.Builder
	b.WriteString("Hello! I'm your plant care assistant. ")
	if plant != nil {
		profile, found := plants.ProfileFor(plant.Type)
		kind := string(plant.Type)
		if found {
			kind = profile.Name
		}
		fmt.Fprintf(&b, "I see you're looking after %q (%s). ", plant.Name, kind)
	} else {
		b.WriteString("Add a plant to get personalised advice! ")
	}
	b.WriteString("I can analyse your live sensor data and give you tailored care tips.")
	return b.String()
}

func clonePlant(p *plants.Plant) *plants.Plant {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
