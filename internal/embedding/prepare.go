package embedding

// PrepareText returns the text actually sent to the model. BGE-family models
// are sensitive to instruction-style prefixes for retrieval embeddings, so a
// non-empty instruction is prepended as "{instruction}: {text}". The shape of
// the resulting embedding is unaffected.
func PrepareText(text, instruction string) string {
	if instruction == "" {
		return text
	}
	return instruction + ": " + text
}

// PrepareTexts applies the same instruction prefix uniformly to every text.
// With no instruction the input slice is returned as is.
func PrepareTexts(texts []string, instruction string) []string {
	if instruction == "" {
		return texts
	}
	prepared := make([]string, len(texts))
	for i, t := range texts {
		prepared[i] = instruction + ": " + t
	}
	return prepared
}
