package service

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ParsedQuestion is one question record recovered from an import document.
type ParsedQuestion struct {
	Text          string
	Options       []string
	CorrectOption int
}

var (
	questionStartRe = regexp.MustCompile(`^Q\d+\.\s*`)
	optionRe        = regexp.MustCompile(`^([A-F])\)\s*`)
	answerRe        = regexp.MustCompile(`^Answer:\s*([A-F])\s*$`)
)

// ExtractPDFText pulls the plain text out of a PDF document.
func ExtractPDFText(file io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(file, size)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return sb.String(), nil
}

// ParseQuestionText parses question blocks of the form
//
//	Q1. Question text?
//	A) Option one
//	B) Option two
//	Answer: A
//
// Option lines may wrap; continuation lines are appended to the previous
// option or to the question text. A block only counts when it has a question,
// at least two options, and an answer letter that indexes into them; anything
// else is skipped.
func ParseQuestionText(text string) []ParsedQuestion {
	var out []ParsedQuestion

	var current *ParsedQuestion
	var answered bool

	flush := func() {
		if current != nil && answered &&
			len(current.Options) >= 2 && len(current.Options) <= 6 &&
			current.CorrectOption < len(current.Options) &&
			strings.TrimSpace(current.Text) != "" {
			out = append(out, *current)
		}
		current = nil
		answered = false
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case questionStartRe.MatchString(line):
			flush()
			current = &ParsedQuestion{Text: questionStartRe.ReplaceAllString(line, "")}

		case current == nil:
			continue

		case answerRe.MatchString(line):
			letter := answerRe.FindStringSubmatch(line)[1]
			current.CorrectOption = int(letter[0] - 'A')
			answered = true

		case optionRe.MatchString(line):
			current.Options = append(current.Options, optionRe.ReplaceAllString(line, ""))

		case answered:
			// Trailing junk after the answer line; ignore until next block.

		case len(current.Options) > 0:
			last := len(current.Options) - 1
			current.Options[last] = current.Options[last] + " " + line

		default:
			current.Text = current.Text + " " + line
		}
	}
	flush()

	return out
}
