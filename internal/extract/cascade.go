package extract

// matcher is one step of an ordered pattern cascade: it either produces a
// value from the input text or reports no match. Keeping each step a plain
// function makes every pattern independently unit-testable.
type matcher func(text string) (string, bool)

// first runs the matchers in order and returns the first hit. No hit yields
// ("", false); callers treat that as an absent field, never as an error.
func first(text string, matchers ...matcher) (string, bool) {
	for _, m := range matchers {
		if v, ok := m(text); ok {
			return v, true
		}
	}
	return "", false
}

// listMatcher is the cascade step shape for multi-value discovery.
type listMatcher func(text string, lines []Line) ([]string, bool)

// firstList runs list matchers in order and returns the first non-empty
// result.
func firstList(text string, lines []Line, matchers ...listMatcher) ([]string, bool) {
	for _, m := range matchers {
		if vs, ok := m(text, lines); ok && len(vs) > 0 {
			return vs, true
		}
	}
	return nil, false
}
