package tui

// History keeps submitted commands for Up/Down recall. The cursor sits
// past the newest entry while the player is not browsing.
type History struct {
	entries []string
	limit   int
	pos     int
}

// NewHistory creates a history that remembers at most limit commands.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Record appends a command, skipping a repeat of the newest entry, and
// stops any browsing in progress.
func (h *History) Record(cmd string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != cmd {
		h.entries = append(h.entries, cmd)
		if len(h.entries) > h.limit {
			h.entries = h.entries[len(h.entries)-h.limit:]
		}
	}
	h.pos = len(h.entries)
}

// Older steps back one entry. It stays on the oldest entry once reached
// and reports false only when there is no history.
func (h *History) Older() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos], true
}

// Newer steps forward one entry. Stepping past the newest entry returns
// "" and false, meaning a fresh input line.
func (h *History) Newer() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return "", false
	}
	return h.entries[h.pos], true
}

// Len returns the number of remembered commands.
func (h *History) Len() int {
	return len(h.entries)
}
