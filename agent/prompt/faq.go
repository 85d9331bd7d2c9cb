package prompt

import "fmt"

func FAQSearchResult(query, matchedTexts string) string {
	return fmt.Sprintf("Answer the following question based on this FAQ:\n\n%s\n\nQuestion: %s", matchedTexts, query)
}

func FAQNoMatch() string {
	return "Tell the user that you couldn't find the answer to their question in the FAQ."
}
