package model

import "github.com/pkoukk/tiktoken-go"

// Encoding compatible with the providers we target.
const tokenizerModel = "gpt-3.5-turbo"

// CountTokens reports how many tokens the text encodes to.
func CountTokens(text string) (int, error) {
	enc, err := tiktoken.EncodingForModel(tokenizerModel)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// TruncateTokens cuts text down to at most max tokens. On encoder errors the
// text is returned unchanged; callers treat truncation as best-effort.
func TruncateTokens(text string, max int) string {
	enc, err := tiktoken.EncodingForModel(tokenizerModel)
	if err != nil {
		return text
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= max {
		return text
	}
	return enc.Decode(tokens[:max])
}
