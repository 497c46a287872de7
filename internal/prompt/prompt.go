package prompt

import (
	"fmt"
	"strings"

	"github.com/newthinker/marketbrief/internal/core"
)

// DefaultMaxChars bounds the assembled prompt. Overflow is truncated,
// not rejected: a lossy prompt still produces a usable summary.
const DefaultMaxChars = 25000

// NoNewsPlaceholder stands in for the headline block when the news
// stage produced nothing.
const NoNewsPlaceholder = "No relevant news available."

// Builder assembles the model prompt from headlines and a stock report.
type Builder struct {
	MaxChars int
}

// NewBuilder creates a Builder with the default length bound.
func NewBuilder() *Builder {
	return &Builder{MaxChars: DefaultMaxChars}
}

// Build assembles the prompt. Deterministic: fixed instruction text,
// bulleted headlines, the report's text form, and a trailing cue.
func (b *Builder) Build(headlines []core.Headline, report core.Report, ticker string) string {
	maxChars := b.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var sb strings.Builder
	sb.WriteString("You are a concise financial assistant. Given the news and stock data, provide a short market summary ")
	sb.WriteString("(3-6 sentences) covering: overall market tone, notable headlines' likely impact, and the stock-specific ")
	sb.WriteString(fmt.Sprintf("implications for %s. Give one bullet list of 3 action-oriented takeaways for an investor (high level).\n\n", ticker))

	sb.WriteString("NEWS:\n")
	sb.WriteString(newsBlock(headlines))
	sb.WriteString("\n\n")

	sb.WriteString("STOCK_DATA:\n")
	sb.WriteString(report.Text())
	sb.WriteString("\n\n")

	sb.WriteString("Answer:")

	prompt := sb.String()
	if len(prompt) > maxChars {
		// Hard prefix truncation, no semantic awareness
		prompt = prompt[:maxChars]
	}
	return prompt
}

func newsBlock(headlines []core.Headline) string {
	if len(headlines) == 0 {
		return NoNewsPlaceholder
	}

	lines := make([]string, 0, len(headlines))
	for _, h := range headlines {
		if !h.IsValid() {
			continue
		}
		line := fmt.Sprintf("- %s", h.Title)
		if h.Source != "" {
			line = fmt.Sprintf("- %s (%s)", h.Title, h.Source)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return NoNewsPlaceholder
	}
	return strings.Join(lines, "\n")
}
