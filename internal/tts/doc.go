// Package tts turns text into narration audio.
//
// A Synthesizer routes each language to one of three engines: Google
// translate speech (gtts), ElevenLabs, or a local Piper binary. Encoded
// engine output is cached in the artifact cache under a SHA-256 key of the
// provider, language, text and engine settings, then decoded to PCM.
// Synthesize never fails: an ElevenLabs error falls back to gtts and any
// other failure yields a short silent placeholder. Only a missing decoder
// makes speech unavailable, which the caller treats as fatal.
package tts
