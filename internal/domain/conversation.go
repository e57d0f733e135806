package domain

import "github.com/google/uuid"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// Conversation is the chat history sent with every chat generation. It always
// starts with exactly one system message.
type Conversation struct {
	id           string
	systemPrompt string
	messages     []Message
}

func NewConversation(systemPrompt string) *Conversation {
	c := &Conversation{systemPrompt: systemPrompt}
	c.Reset()
	return c
}

func (c *Conversation) ID() string {
	return c.id
}

// Reset drops every message but the system prompt and assigns a fresh id.
func (c *Conversation) Reset() {
	c.id = uuid.Must(uuid.NewV7()).String()
	c.messages = []Message{NewMessage(RoleSystem, c.systemPrompt)}
}

func (c *Conversation) Append(msgs ...Message) {
	c.messages = append(c.messages, msgs...)
}

// Messages returns a copy of the history.
func (c *Conversation) Messages() []Message {
	copied := make([]Message, len(c.messages))
	copy(copied, c.messages)
	return copied
}

// With returns a copy of the history followed by msg, leaving c untouched.
func (c *Conversation) With(msg Message) []Message {
	messages := make([]Message, 0, len(c.messages)+1)
	messages = append(messages, c.messages...)
	return append(messages, msg)
}

func (c *Conversation) Len() int {
	return len(c.messages)
}
