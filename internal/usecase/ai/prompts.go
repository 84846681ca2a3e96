package ai

import (
	"fmt"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
)

const (
	// KeyMomentsInputLimit bounds the transcript characters sent for key moments
	KeyMomentsInputLimit = 3000
	// MindMapInputLimit bounds the transcript characters sent for the mind map
	MindMapInputLimit = 15000
)

const keyMomentsPrompt = `Analyze this video transcript and identify 5-7 key moments or important topics discussed.
For each key moment, provide:
1. A brief title (max 10 words)
2. A one-sentence description

Format your response as:
TIMESTAMP: [title] - [description]

Transcript: `

const mindMapPrompt = `Create a clean, simple Mind Map for this video. Output ONLY valid Graphviz DOT code.

Layout Rules:
1. Use 'rankdir=LR' (Left to Right) for easy reading.
2. Central Node: The main topic (Shape: Double Circle, Color: Gold).
3. Level 1 Nodes: Main Concepts (Shape: Box, Color: LightBlue).
4. Level 2 Nodes: Key Details (Shape: Plain Text, Color: None).
5. LIMIT LABELS: Maximum 2-3 words per node. No long sentences.
6. Limit complexity: Max 5 main branches, max 3 sub-branches each.

Structure:
digraph MindMap {
    rankdir=LR;
    node [fontname="Arial"];
    edge [color="#B0BEC5"];
    // Nodes and Edges here...
}

Transcript:
`

const chatPromptTemplate = `You are an intelligent AI assistant analyzing a YouTube video.

Instructions:
1. Answer the user's question primarily based on the provided Video Transcript.
2. If the exact answer is not found in the transcript, use your own general knowledge to provide a relevant and helpful compatible answer.
3. Do NOT say "I cannot answer this from the summary". Instead, provide the best possible answer derived from the context or your knowledge base.
4. Keep the tone helpful, professional, and engaging.

Video Transcript:
%s

User Question: %s

Answer:`

// SummaryPrompt builds the summary prompt; the full transcript is appended
func SummaryPrompt(wordCount int, style entities.SummaryStyle, transcript string) string {
	format := "in bullet points"
	if style == entities.StyleParagraphs {
		format = "in detailed paragraphs"
	}
	return fmt.Sprintf("You are a YouTube video summarizer. Summarize the entire video and provide "+
		"the important summary %s within %d words. The summary should always be in English, "+
		"regardless of the original language. Please provide the summary of the text given here: ",
		format, wordCount) + transcript
}

// KeyMomentsPrompt builds the key moments prompt over the first 3000 characters
func KeyMomentsPrompt(transcript string) string {
	return keyMomentsPrompt + truncateRunes(transcript, KeyMomentsInputLimit)
}

// MindMapPrompt builds the mind map prompt over the first 15000 characters
func MindMapPrompt(transcript string) string {
	return mindMapPrompt + truncateRunes(transcript, MindMapInputLimit)
}

// ChatPrompt builds the question answering prompt over the full transcript
func ChatPrompt(transcript, question string) string {
	return fmt.Sprintf(chatPromptTemplate, transcript, question)
}

// truncateRunes keeps the first n characters of s without splitting a rune
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
