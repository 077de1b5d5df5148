// Package linegen asks a chat-completions model for input lines.
//
// Two prompt styles exist: vocab (single words or short noun phrases) and
// scenario (short everyday sentences). Both request "<primary> #tags |
// <secondary>" lines. Responses are parsed strictly first; when too few
// pipe lines come back, adjacent lines are paired.
package linegen
