package entities

// ArtifactKind identifies the type of generated text
type ArtifactKind string

const (
	ArtifactSummary    ArtifactKind = "summary"
	ArtifactKeyMoments ArtifactKind = "key_moments"
	ArtifactMindMap    ArtifactKind = "mind_map_graph"
	ArtifactChatAnswer ArtifactKind = "chat_answer"
)

// IsValid checks if the kind is one of the known artifact kinds
func (k ArtifactKind) IsValid() bool {
	switch k {
	case ArtifactSummary, ArtifactKeyMoments, ArtifactMindMap, ArtifactChatAnswer:
		return true
	}
	return false
}

// SummaryStyle controls the structure of a generated summary
type SummaryStyle string

const (
	StyleBullets    SummaryStyle = "bullets"
	StyleParagraphs SummaryStyle = "paragraphs"
)

// SummaryLengths maps the named lengths to their target word counts
var SummaryLengths = map[string]int{
	"brief":     150,
	"medium":    250,
	"detailed":  400,
	"extensive": 800,
}
