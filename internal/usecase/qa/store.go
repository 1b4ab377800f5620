package qa

import "sync"

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// historyLimit caps the conversation history to the most recent messages.
const historyLimit = 20

// ContentStore keeps the last processed document and its summary so follow-up
// questions can be answered without resubmitting the text, together with the
// conversation history. It is safe for concurrent use.
//
// Only the most recent document is kept: a new summarization replaces the
// previous content, matching how the chat UI works.
type ContentStore struct {
	mu      sync.Mutex
	text    string
	summary string
	history []Message
}

// NewContentStore creates an empty store.
func NewContentStore() *ContentStore {
	return &ContentStore{}
}

// SetDocument replaces the stored document and summary.
func (s *ContentStore) SetDocument(text, summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.summary = summary
}

// DocumentText returns the stored document text and whether one is present.
func (s *ContentStore) DocumentText() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.text != ""
}

// Summary returns the stored summary text.
func (s *ContentStore) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// AppendExchange records one question/answer pair, trimming the history to
// the most recent messages.
func (s *ContentStore) AppendExchange(question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history,
		Message{Role: RoleUser, Content: question},
		Message{Role: RoleAssistant, Content: answer},
	)
	if len(s.history) > historyLimit {
		s.history = s.history[len(s.history)-historyLimit:]
	}
}

// History returns a copy of the conversation history, oldest first.
func (s *ContentStore) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory removes all conversation messages. The stored document is kept
// so the user can keep asking about it in a fresh conversation.
func (s *ContentStore) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}
