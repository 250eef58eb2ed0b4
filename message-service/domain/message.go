package domain

import (
	"time"

	"github.com/skillswap/gdpr-system/shared/models"
)

// AnonymizedBody replaces the content of scrubbed messages. The original
// text is not retained anywhere, which is what makes this step
// irreversible.
const AnonymizedBody = "[message removed]"

// AnonymizedSender replaces the display name of scrubbed senders
const AnonymizedSender = "Deleted User"

// Conversation is a message thread between two users
type Conversation struct {
	ID          models.ID `json:"id"`
	InitiatorID models.ID `json:"initiator_id"`
	ResponderID models.ID `json:"responder_id"`
	Subject     string    `json:"subject,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Involves reports whether the user is one of the two parties
func (c *Conversation) Involves(userID models.ID) bool {
	return c.InitiatorID == userID || c.ResponderID == userID
}

// Message is one message within a conversation
type Message struct {
	ID             models.ID `json:"id"`
	ConversationID models.ID `json:"conversation_id"`
	SenderID       models.ID `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	RecipientID    models.ID `json:"recipient_id"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sent_at"`
	Anonymized     bool      `json:"anonymized"`
}

// Anonymize removes the message content and sender identity while
// keeping the row so the other party's thread stays intact
func (m *Message) Anonymize() {
	m.Body = AnonymizedBody
	m.SenderName = AnonymizedSender
	m.Anonymized = true
}

// Export is the portable representation of a user's messaging data
type Export struct {
	UserID        models.ID      `json:"user_id"`
	Conversations []Conversation `json:"conversations"`
	Messages      []Message      `json:"messages"`
	ExportedAt    time.Time      `json:"exported_at"`
}
