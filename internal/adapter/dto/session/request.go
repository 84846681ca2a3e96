package session

// ChatRequest represents a question about the active video
type ChatRequest struct {
	Question string `json:"question" validate:"required,notblank,max=4000"`
}

// ExportQuery represents the export format selection
type ExportQuery struct {
	Format string `query:"format" validate:"omitempty,oneof=txt md markdown pdf"`
}
