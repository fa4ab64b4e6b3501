package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/lox/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "edit", "clear", "quit"}

// isWordBoundary reports whether r ends an identifier for completion
// purposes: whitespace or any Lox operator or punctuation character.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '.',
		'(', ')', '{', '}',
		'+', '-', '*', '/',
		'<', '>', '=', '!',
		',', ';', '"':
		return true
	}

	return false
}

// wordBounds returns the word under the cursor and its byte boundaries in
// input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// inString reports whether offset falls inside a string literal, where
// completion is not offered.
func inString(input string, offset int) bool {
	return strings.Count(input[:offset], `"`)%2 == 1
}

// sourceCandidates returns the keywords followed by the global names that
// are not keywords, without duplicates.
func sourceCandidates(globals []string) []string {
	names := lang.Keywords()

	for _, name := range globals {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	return names
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor, ranked best first. There are no matches for an empty word.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)
	if word == "" || inString(input, wordStart) {
		return nil, wordStart, wordEnd
	}

	candidates := ctrlCommands
	if m.mode == modeEval {
		candidates = sourceCandidates(m.session.names())
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within width. The selected candidate (when tabbing) uses the selected
// style.
func (m model) renderCandidateBar() string {
	if len(m.matches) == 0 || m.width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range m.matches {
		rendered := m.renderCandidate(match, m.tabActive && i == m.suggIdx)
		entryWidth := lipgloss.Width(rendered)

		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > m.width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted. Functions are shown with a "()" suffix.
func (m model) renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if m.mode == modeEval && m.isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

// isFunction reports whether name is a global bound to a callable.
func (m model) isFunction(name string) bool {
	v, ok := m.session.lookup(name)
	if !ok {
		return false
	}

	_, ok = v.(lang.Callable)

	return ok
}

// preview returns a short printed form of a global value.
func preview(v lang.Value) string {
	const limit = 40

	s := lang.Stringify(v)
	if _, ok := v.(lang.String); ok {
		s = `"` + s + `"`
	}

	if len(s) > limit {
		s = s[:limit-3] + "..."
	}

	return s
}
