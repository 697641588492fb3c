package recommend

import (
	"fmt"
	"strings"

	"github.com/runger/shifu/internal/stats"
)

// promptTemplate is the fixed instructional template sent to the
// completion service. %s is replaced by the rendered history lines.
const promptTemplate = `You are a Chinese language tutor helping a student practice pinyin pronunciation. Here is the student's performance history for syllables they have attempted at least 10 times:

%s

Based on this information, suggest ONE new syllable for them to practice next. Consider their weak areas (low accuracy) and provide something at an appropriate difficulty level. If they struggle with certain sounds, suggest similar sounds to practice. Respond with ONLY a JSON object in this format: {"syllable": "the romanized syllable with tone marks", "displayForm": "the Chinese character"}`

// BuildPrompt renders the accuracy history into the instructional
// template. An empty history produces an empty history section; the
// request is still issued.
func BuildPrompt(history []stats.SyllableStat) string {
	lines := make([]string, 0, len(history))
	for _, s := range history {
		lines = append(lines, fmt.Sprintf("%s: %.1f%% accuracy (%d/%d correct)",
			s.Syllable, s.Accuracy, s.Correct, s.TotalAttempts))
	}
	return fmt.Sprintf(promptTemplate, strings.Join(lines, "\n"))
}
