package chat

// EstimateTokens approximates token cost as ⌈len/4⌉. This is deliberately
// the same rough heuristic the client uses; it under/over-counts for
// accented text, but correcting it would change observable trimming
// behavior, so it is carried as-is.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}

// TotalTokens sums the estimated cost of every message in the window.
func TotalTokens(messages []Message) int {
	total := 0
	for _, m := range messages {
		total += EstimateTokens(m.Content)
	}
	return total
}

// TrimConversation fits messages into maxTokens. The first system message
// is always retained and placed first; every other system message is
// discarded so callers cannot smuggle their own instructions into the
// window. Non-system messages are accumulated newest-first, so whatever
// gets dropped is the oldest history.
func TrimConversation(messages []Message, maxTokens int) []Message {
	var system *Message
	conversation := make([]Message, 0, len(messages))
	for i := range messages {
		if messages[i].Role == "system" {
			if system == nil {
				system = &messages[i]
			}
			continue
		}
		conversation = append(conversation, messages[i])
	}

	total := 0
	if system != nil {
		total = EstimateTokens(system.Content)
	}

	trimmed := make([]Message, 0, len(conversation))
	for i := len(conversation) - 1; i >= 0; i-- {
		cost := EstimateTokens(conversation[i].Content)
		if total+cost > maxTokens {
			break
		}
		trimmed = append(trimmed, conversation[i])
		total += cost
	}

	// trimmed was collected newest-first; restore chronological order.
	for i, j := 0, len(trimmed)-1; i < j; i, j = i+1, j-1 {
		trimmed[i], trimmed[j] = trimmed[j], trimmed[i]
	}

	if system != nil {
		return append([]Message{*system}, trimmed...)
	}
	return trimmed
}
