package linegen

import (
	"fmt"
	"strings"
)

// Modes.
const (
	ModeVocab    = "vocab"
	ModeScenario = "scenario"
)

// Request describes what to generate.
type Request struct {
	Topic         string
	Level         string
	Mode          string
	PrimaryLang   string
	SecondaryLang string
	Count         int
}

func (r Request) withDefaults() Request {
	r.Topic = strings.TrimSpace(r.Topic)
	if r.Topic == "" {
		r.Topic = "everyday life"
	}
	if strings.TrimSpace(r.Level) == "" {
		r.Level = "A1"
	}
	r.Mode = strings.ToLower(strings.TrimSpace(r.Mode))
	if r.Mode != ModeVocab {
		r.Mode = ModeScenario
	}
	if r.PrimaryLang == "" {
		r.PrimaryLang = "en"
	}
	if r.SecondaryLang == "" {
		r.SecondaryLang = "fr"
	}
	if r.Count <= 0 {
		r.Count = 8
	}
	return r
}

const systemPrompt = "You are a strict formatter for language-learning material. Output only the requested lines."

// BuildPrompt returns the user prompt for r.
func BuildPrompt(r Request) string {
	r = r.withDefaults()
	var b strings.Builder
	if r.Mode == ModeVocab {
		fmt.Fprintf(&b, "Generate EXACTLY %d everyday VOCAB items for the topic %q.\n", r.Count, r.Topic)
		fmt.Fprintf(&b, "CEFR level: %s. Languages: primary=%s, secondary=%s.\n\n", r.Level, r.PrimaryLang, r.SecondaryLang)
		b.WriteString("Rules:\n")
		b.WriteString("- Each item is a single word or a very short noun phrase (1-3 words) in the primary language. No sentences and no trailing punctuation.\n")
		b.WriteString("- After the term append 2-6 English visual hashtags (concrete nouns or adjectives, e.g. #cup #kitchen #indoor).\n")
		b.WriteString("- Then a pipe | and the secondary translation of the term.\n")
		b.WriteString("- Follow normal capitalization of each language (German nouns capitalized).\n")
		b.WriteString("- No numbering, bullets, quotes, commentary or blank lines.\n\n")
		b.WriteString("Examples (format only):\n")
		b.WriteString("coffee #cafe #cup #barista #indoor | Kaffee\n")
		b.WriteString("park bench #park #bench #outdoor | banco del parque\n\n")
	} else {
		fmt.Fprintf(&b, "Generate EXACTLY %d short, natural sentences for the topic %q.\n", r.Count, r.Topic)
		fmt.Fprintf(&b, "CEFR level: %s. Languages: primary=%s, secondary=%s.\n\n", r.Level, r.PrimaryLang, r.SecondaryLang)
		b.WriteString("Rules:\n")
		b.WriteString("- Each line is exactly: <primary sentence> #tags | <secondary translation>\n")
		b.WriteString("- Use standard punctuation in both languages and end each sentence with . ? or !\n")
		b.WriteString("- Append 3-6 lowercase English visual hashtags after the primary sentence's closing punctuation: a concrete object, a place, a person or role, and #indoor or #outdoor when relevant.\n")
		fmt.Fprintf(&b, "- Keep vocabulary and grammar at CEFR %s.\n", r.Level)
		b.WriteString("- No numbering, bullets, quotes, explanations or blank lines.\n\n")
		b.WriteString("Examples (format only):\n")
		b.WriteString("I need a coffee. #coffee #cafe | J'ai besoin d'un café.\n")
		b.WriteString("The shop is closed today. #shop #closed | Le magasin est fermé aujourd'hui.\n\n")
	}
	fmt.Fprintf(&b, "Return only %d lines, nothing else.", r.Count)
	return b.String()
}
