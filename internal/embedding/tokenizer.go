package embedding

// Tokenizer produces token IDs for BERT-style models (input_ids,
// attention_mask, token_type_ids).
type Tokenizer interface {
	// Tokenize encodes one text into padded sequences of length maxTokens.
	Tokenize(text string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64)
	// TokenizeBatch encodes texts into row-major flattened sequences of
	// length len(texts)*maxTokens, suitable for a [n, maxTokens] tensor.
	TokenizeBatch(texts []string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64)
}

// SimpleTokenizer is a word-split tokenizer with hash-based token IDs. It
// produces valid BERT-shaped inputs without a vocabulary file; swap in a
// vocab-backed Tokenizer for production-quality embeddings.
type SimpleTokenizer struct{}

const (
	clsTokenID = 101
	sepTokenID = 102
	vocabSize  = 30000
)

// Tokenize splits text into words and produces padded token IDs up to maxTokens.
func (t *SimpleTokenizer) Tokenize(text string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64) {
	if maxTokens <= 0 {
		maxTokens = 256
	}
	inputIDs = make([]int64, maxTokens)
	attentionMask = make([]int64, maxTokens)
	tokenTypeIDs = make([]int64, maxTokens)
	t.encodeInto(text, maxTokens, inputIDs, attentionMask)
	return inputIDs, attentionMask, tokenTypeIDs
}

// TokenizeBatch encodes each text into its own row of the flattened output.
func (t *SimpleTokenizer) TokenizeBatch(texts []string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64) {
	if maxTokens <= 0 {
		maxTokens = 256
	}
	n := len(texts)
	inputIDs = make([]int64, n*maxTokens)
	attentionMask = make([]int64, n*maxTokens)
	tokenTypeIDs = make([]int64, n*maxTokens)
	for i, text := range texts {
		row := i * maxTokens
		t.encodeInto(text, maxTokens, inputIDs[row:row+maxTokens], attentionMask[row:row+maxTokens])
	}
	return inputIDs, attentionMask, tokenTypeIDs
}

func (t *SimpleTokenizer) encodeInto(text string, maxTokens int, inputIDs, attentionMask []int64) {
	inputIDs[0] = clsTokenID // [CLS]
	attentionMask[0] = 1

	pos := 1
	for _, word := range SplitWords(text) {
		if pos >= maxTokens-1 {
			break
		}
		inputIDs[pos] = int64(HashString(word) % vocabSize)
		attentionMask[pos] = 1
		pos++
	}
	if pos < maxTokens {
		inputIDs[pos] = sepTokenID // [SEP]
		attentionMask[pos] = 1
	}
}

// SplitWords splits text on whitespace and returns non-empty words.
func SplitWords(text string) []string {
	var words []string
	word := ""
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' {
			if word != "" {
				words = append(words, word)
				word = ""
			}
		} else {
			word += string(r)
		}
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}

// HashString returns a deterministic hash for use as a simple token ID.
func HashString(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
