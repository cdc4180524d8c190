// Package models defines the request and response records of the embedding API.
package models

import "fmt"

// MaxBatchTexts is the largest number of texts accepted in one batch request.
const MaxBatchTexts = 100

// EmbedRequest asks for the embedding of a single text. Text is a pointer so
// an absent field is distinguishable from an explicitly empty string: the
// former fails validation, the latter embeds the empty string.
type EmbedRequest struct {
	Text *string `json:"text"`
	// Instruction is an optional retrieval-task prefix prepended as
	// "{instruction}: {text}" before inference.
	Instruction string `json:"instruction,omitempty"`
}

// Validate enforces field presence before the model is touched.
func (r *EmbedRequest) Validate() error {
	if r.Text == nil {
		return fmt.Errorf("text is required")
	}
	return nil
}

// EmbedBatchRequest asks for embeddings of an ordered list of texts. The
// instruction, when present, applies uniformly to every text.
type EmbedBatchRequest struct {
	Texts       []string `json:"texts"`
	Instruction string   `json:"instruction,omitempty"`
}

// Validate enforces the batch size bounds before the model is touched.
func (r *EmbedBatchRequest) Validate() error {
	if len(r.Texts) == 0 {
		return fmt.Errorf("texts list cannot be empty")
	}
	if len(r.Texts) > MaxBatchTexts {
		return fmt.Errorf("maximum %d texts per batch", MaxBatchTexts)
	}
	return nil
}

// SimilarityRequest asks for the cosine similarity of two texts. Both fields
// are required; see EmbedRequest for the pointer convention.
type SimilarityRequest struct {
	Text1 *string `json:"text1"`
	Text2 *string `json:"text2"`
}

// Validate enforces field presence before the model is touched.
func (r *SimilarityRequest) Validate() error {
	if r.Text1 == nil {
		return fmt.Errorf("text1 is required")
	}
	if r.Text2 == nil {
		return fmt.Errorf("text2 is required")
	}
	return nil
}
