package recommend

import (
	"strings"
	"testing"

	"github.com/runger/shifu/internal/stats"
)

func TestBuildPrompt_RendersHistory(t *testing.T) {
	t.Parallel()

	history := []stats.SyllableStat{
		{Syllable: "ma", Correct: 7, Incorrect: 3, TotalAttempts: 10, Accuracy: 70.0},
		{Syllable: "zhi", Correct: 5, Incorrect: 7, TotalAttempts: 12, Accuracy: 41.666666666666664},
	}

	prompt := BuildPrompt(history)

	if !strings.Contains(prompt, "ma: 70.0% accuracy (7/10 correct)") {
		t.Errorf("prompt missing rendered ma line:\n%s", prompt)
	}
	// Accuracy is rendered to one decimal place.
	if !strings.Contains(prompt, "zhi: 41.7% accuracy (5/12 correct)") {
		t.Errorf("prompt missing rendered zhi line:\n%s", prompt)
	}
	if !strings.Contains(prompt, `{"syllable":`) || !strings.Contains(prompt, `"displayForm":`) {
		t.Error("prompt does not instruct the JSON response shape")
	}
	if !strings.Contains(prompt, "ONE new syllable") {
		t.Error("prompt does not ask for exactly one syllable")
	}
}

func TestBuildPrompt_EmptyHistory(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt(nil)

	// The prompt still issues with an empty history section.
	if prompt == "" {
		t.Fatal("BuildPrompt() returned empty prompt")
	}
	if !strings.Contains(prompt, "performance history") {
		t.Error("prompt lost its instructional template")
	}
}

func TestBuildPrompt_LinesJoinedByNewline(t *testing.T) {
	t.Parallel()

	history := []stats.SyllableStat{
		{Syllable: "ma", Correct: 10, Incorrect: 0, TotalAttempts: 10, Accuracy: 100.0},
		{Syllable: "shi", Correct: 0, Incorrect: 10, TotalAttempts: 10, Accuracy: 0.0},
	}

	prompt := BuildPrompt(history)
	if !strings.Contains(prompt, "ma: 100.0% accuracy (10/10 correct)\nshi: 0.0% accuracy (0/10 correct)") {
		t.Errorf("history lines not newline-joined:\n%s", prompt)
	}
}
