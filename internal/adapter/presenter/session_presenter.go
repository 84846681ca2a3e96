package presenter

import (
	"github.com/johnquangdev/video-summarizer/internal/adapter/dto/session"
	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	"github.com/johnquangdev/video-summarizer/internal/usecase/resolver"
)

// ToSessionResponse converts a Session entity to SessionResponse DTO
func ToSessionResponse(s entities.Session) *session.SessionResponse {
	response := &session.SessionResponse{
		ID:            s.ID,
		HasTranscript: s.HasTranscript(),
		Chat:          ToChatTurnResponses(s.Chat),
		UpdatedAt:     s.UpdatedAt,
	}
	if !s.HasTranscript() {
		return response
	}

	response.VideoID = s.VideoID
	response.VideoURL = s.VideoURL
	response.Thumbnail = resolver.Thumbnail(s.VideoID)
	response.Language = s.Transcript.Language
	response.Summary = s.Summary
	response.KeyMoments = s.KeyMoments
	response.MindMap = s.MindMap
	response.TranscriptWords = s.Transcript.WordCount()
	response.Segments = ToSegmentResponses(s.Transcript.Segments)
	return response
}

// ToChatTurnResponses converts chat turns, never returning nil
func ToChatTurnResponses(turns []entities.ChatTurn) []session.ChatTurnResponse {
	out := make([]session.ChatTurnResponse, len(turns))
	for i, t := range turns {
		out[i] = session.ChatTurnResponse{Question: t.Question, Answer: t.Answer}
	}
	return out
}
