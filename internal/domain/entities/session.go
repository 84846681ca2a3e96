package entities

import "time"

// ChatTurn is one question and its answer
type ChatTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session holds the per-client working state. It is never persisted to
// the history store and transitions return copies instead of mutating.
type Session struct {
	ID         string      `json:"id"`
	VideoID    string      `json:"video_id,omitempty"`
	VideoURL   string      `json:"video_url,omitempty"`
	Transcript *Transcript `json:"transcript,omitempty"`
	Summary    string      `json:"summary,omitempty"`
	KeyMoments string      `json:"key_moments,omitempty"`
	MindMap    string      `json:"mind_map,omitempty"`
	Chat       []ChatTurn  `json:"chat,omitempty"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewSession creates an empty session
func NewSession(id string) Session {
	return Session{ID: id, UpdatedAt: time.Now().UTC()}
}

// HasTranscript reports whether a transcript is active
func (s Session) HasTranscript() bool {
	return s.Transcript != nil
}

// WithTranscript makes transcript the active one. Chat and every artifact
// derived from the previous transcript are dropped.
func (s Session) WithTranscript(videoID, videoURL string, transcript *Transcript) Session {
	return Session{
		ID:         s.ID,
		VideoID:    videoID,
		VideoURL:   videoURL,
		Transcript: transcript,
		UpdatedAt:  time.Now().UTC(),
	}
}

// WithSummary records the summary and key moments for the active transcript
func (s Session) WithSummary(summary, keyMoments string) Session {
	s.Summary = summary
	s.KeyMoments = keyMoments
	s.Chat = cloneChat(s.Chat)
	s.UpdatedAt = time.Now().UTC()
	return s
}

// WithMindMap records the generated graph description
func (s Session) WithMindMap(dot string) Session {
	s.MindMap = dot
	s.Chat = cloneChat(s.Chat)
	s.UpdatedAt = time.Now().UTC()
	return s
}

// WithChatTurn appends a turn to a copy of the chat history
func (s Session) WithChatTurn(question, answer string) Session {
	chat := make([]ChatTurn, len(s.Chat), len(s.Chat)+1)
	copy(chat, s.Chat)
	s.Chat = append(chat, ChatTurn{Question: question, Answer: answer})
	s.UpdatedAt = time.Now().UTC()
	return s
}

// ClearChat drops the chat history
func (s Session) ClearChat() Session {
	s.Chat = nil
	s.UpdatedAt = time.Now().UTC()
	return s
}

func cloneChat(chat []ChatTurn) []ChatTurn {
	if chat == nil {
		return nil
	}
	out := make([]ChatTurn, len(chat))
	copy(out, chat)
	return out
}
