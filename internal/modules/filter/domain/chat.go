package domain

import (
	"strconv"
	"strings"
)

// ChatFilter is an allow-list of chat identifiers and sender handles.
// An empty filter accepts every chat.
type ChatFilter struct {
	entries map[string]struct{}
}

// NewChatFilter builds a filter from normalized entries, each a lowercase
// numeric chat id or a "@"-prefixed handle.
func NewChatFilter(entries []string) *ChatFilter {
	f := &ChatFilter{entries: make(map[string]struct{}, len(entries))}
	for _, entry := range entries {
		f.entries[entry] = struct{}{}
	}

	return f
}

// Empty reports whether the filter has no entries.
func (f *ChatFilter) Empty() bool {
	return len(f.entries) == 0
}

// ShouldProcess reports whether a message from the given chat and sender is
// in scope. senderRef is the sender's "@handle" when a username exists,
// otherwise the sender's numeric id as a string, or "" when the message has
// no sender.
func (f *ChatFilter) ShouldProcess(chatID int64, senderRef string) bool {
	if len(f.entries) == 0 {
		return true
	}

	if f.contains(strconv.FormatInt(chatID, 10)) {
		return true
	}

	if senderRef == "" {
		return false
	}

	bare := strings.TrimPrefix(strings.ToLower(senderRef), "@")

	return f.contains(bare) || f.contains("@"+bare)
}

func (f *ChatFilter) contains(entry string) bool {
	_, ok := f.entries[entry]
	return ok
}
