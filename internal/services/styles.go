package services

// Prompt hints for each translation style
var styleInstructions = map[string]string{
	"informal": "casual and friendly, the way native speakers talk to friends",
	"formal":   "polite and formal, suitable for official correspondence",
	"business": "concise professional business register",
	"literary": "expressive literary language with natural rhythm",
}

func styleInstruction(style string) string {
	if s, ok := styleInstructions[style]; ok {
		return s
	}
	return styleInstructions["informal"]
}
