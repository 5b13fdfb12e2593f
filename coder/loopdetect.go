package coder

import (
	"crypto/sha256"
	"fmt"

	"github.com/martinemde/hal/llm"
)

// loopDetectionWindow is how many recent tool calls the repetition check
// considers.
const loopDetectionWindow = 10

// callSignature is a deterministic fingerprint of one tool call.
func callSignature(call llm.ToolCall) string {
	h := sha256.Sum256(call.Arguments)
	return fmt.Sprintf("%s:%x", call.Name, h[:8])
}

// recentCallSignatures walks the history backwards collecting up to count
// tool-call signatures, returned in chronological order.
func recentCallSignatures(history []llm.Message, count int) []string {
	var sigs []string
	for i := len(history) - 1; i >= 0 && len(sigs) < count; i-- {
		msg := history[i]
		if msg.Role != llm.RoleAssistant {
			continue
		}
		calls := msg.ToolCalls()
		for j := len(calls) - 1; j >= 0 && len(sigs) < count; j-- {
			sigs = append(sigs, callSignature(calls[j]))
		}
	}
	for i, j := 0, len(sigs)-1; i < j; i, j = i+1, j-1 {
		sigs[i], sigs[j] = sigs[j], sigs[i]
	}
	return sigs
}

// detectLoop reports whether the last windowSize tool calls follow a
// repeating pattern of length 1, 2, or 3. Only pattern lengths that divide
// windowSize evenly are checked.
func detectLoop(history []llm.Message, windowSize int) bool {
	sigs := recentCallSignatures(history, windowSize)
	if len(sigs) < windowSize {
		return false
	}

	for patternLen := 1; patternLen <= 3; patternLen++ {
		if windowSize%patternLen != 0 {
			continue
		}
		pattern := sigs[:patternLen]
		allMatch := true
		for i := patternLen; i < windowSize && allMatch; i += patternLen {
			for j := 0; j < patternLen; j++ {
				if sigs[i+j] != pattern[j] {
					allMatch = false
					break
				}
			}
		}
		if allMatch {
			return true
		}
	}

	return false
}
