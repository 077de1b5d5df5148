// Package ingest parses input text into logical lines.
//
// Each non-blank input line holds pipe-separated language parts, for example
// "I need a coffee. #coffee #cafe | J'ai besoin d'un café.". Configured
// indices pick the primary and secondary parts. Leading list bullets are
// removed and #hashtags on the primary part become visual hint tags.
package ingest
