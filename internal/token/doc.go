// Package token defines lexical token kinds and trivia for TOML manifests.
// Invariants:
//   - Token.Text is a slice of the original source (no copies, quotes included).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace, newlines and '#' comments never appear in the main token
//     stream; they are attached to the following token as Leading trivia.
//   - Bare runs ([A-Za-z0-9_+:-]) are a single Bare token; '.' is always a
//     separate Dot token. The parser decides whether a run is a key or a
//     scalar and glues "1" "." "5" back together for floats and datetimes.
package token
