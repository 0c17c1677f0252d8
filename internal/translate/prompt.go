package translate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// CacheNamespace identifies translations produced by model with the current
// prompt wording. It changes whenever either one does.
func CacheNamespace(model string) string {
	sum := sha256.Sum256([]byte(systemPrompt("{source}", "{target}")))
	return model + "@" + hex.EncodeToString(sum[:4])
}

// systemPrompt builds the instruction sent with every pattern translation.
// sourceName and targetName are English language names.
func systemPrompt(sourceName, targetName string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are an expert knitting pattern translator with native-level fluency in %s.\n\n", targetName))
	sb.WriteString(fmt.Sprintf("Translate the %s knitting pattern text you receive into natural, professional %s, "+
		"the way an experienced knitter who is a native speaker would have written it.\n\n", sourceName, targetName))

	sb.WriteString("RULES:\n")
	rules := []string{
		"Translate only the text you are given. Do not add, remove or change any content.",
		"Do not add examples, explanations, notes or instructions that are not in the source text.",
		"Do not invent pattern details.",
		"Preserve all formatting, line breaks, numbers, measurements and punctuation exactly.",
		"Keep lines written in capital letters in capital letters.",
		fmt.Sprintf("Use the knitting terminology and standard abbreviations that %s-speaking knitters use.", targetName),
		"Translate idiomatically, not word for word.",
		"Keep brand names, yarn names and other proper nouns untranslated (e.g. \"Drops Air\", \"SIBELLE\").",
	}
	for i, rule := range rules {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rule))
	}

	sb.WriteString(fmt.Sprintf("\nReturn only the %s translation, nothing else.", targetName))
	return sb.String()
}
