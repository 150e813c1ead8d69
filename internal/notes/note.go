// Package notes holds free-text notes grouped by the name of the contact they
// belong to.
package notes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ShortIDLength is how many leading id characters are shown and typed.
const ShortIDLength = 8

// Note is a tagged text snippet. ID is stable for the note's lifetime.
type Note struct {
	ID   string
	Text string
	Tags []string
}

// New creates a note with a fresh random id.
func New(text string, tags []string) *Note {
	return &Note{
		ID:   uuid.New().String(),
		Text: text,
		Tags: cleanTags(tags),
	}
}

// ShortID returns the displayed prefix of the id.
func (n *Note) ShortID() string {
	if len(n.ID) <= ShortIDLength {
		return n.ID
	}
	return n.ID[:ShortIDLength]
}

// HasTag reports whether the note carries tag, ignoring case.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func (n *Note) String() string {
	if len(n.Tags) == 0 {
		return fmt.Sprintf("[%s] %s", n.ShortID(), n.Text)
	}
	tags := make([]string, len(n.Tags))
	for i, t := range n.Tags {
		tags[i] = "#" + t
	}
	return fmt.Sprintf("[%s] %s %s", n.ShortID(), n.Text, strings.Join(tags, ", "))
}

// cleanTags drops blank entries and a leading '#', keeping order and case.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
