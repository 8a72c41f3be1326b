package explainer

import (
	"context"
	"fmt"
	"strings"

	"github.com/remaimber-it/quizcore/internal/domain/practice"
)

// Basic renders fixed templates. It is what an item carries before any
// background enrichment runs.
type Basic struct{}

func (Basic) Explain(_ context.Context, c Context) (practice.Patch, error) {
	return practice.Patch{
		DetailedAnalysis: Analysis(c),
		Suggestion:       Suggestion(c),
	}, nil
}

// Analysis is the templated Markdown analysis of an item.
func Analysis(c Context) string {
	var b strings.Builder

	b.WriteString("## Answer analysis\n\n")
	if c.IsCorrect {
		b.WriteString("**Correct.** Your answer shows a good grasp of this point.\n\n")
	} else {
		b.WriteString("**Incorrect.**\n\n")
		fmt.Fprintf(&b, "Your answer: %s\n", c.UserAnswer)
		fmt.Fprintf(&b, "Correct answer: %s\n\n", c.CorrectAnswer)
		b.WriteString("### Possible causes\n")
		b.WriteString("- The concept is not yet fully understood\n")
		b.WriteString("- The question was read too quickly\n\n")
	}

	b.WriteString("### Approach\n")
	b.WriteString("1. Read the question and identify what is asked\n")
	b.WriteString("2. Recall the concepts it relies on\n")
	b.WriteString("3. Reason from those concepts to an answer\n")
	b.WriteString("4. Check the answer against the question\n\n")

	b.WriteString("### Suggestion\n")
	if c.IsCorrect {
		b.WriteString("- Try harder questions on the same topic\n")
	} else {
		b.WriteString("- Review the underlying concepts and practice similar questions\n")
	}

	return b.String()
}

// Suggestion is a one-line study hint for an item.
func Suggestion(c Context) string {
	topic := c.Topic
	if topic == "" {
		topic = "this topic"
	}

	if c.IsCorrect {
		switch c.QuestionType {
		case "choice", "multiple":
			return fmt.Sprintf("Correct. Your grasp of %s is solid; move on to harder questions.", topic)
		case "fill":
			return fmt.Sprintf("Correct. Practice applying the terms of %s in context.", topic)
		case "short", "essay":
			return fmt.Sprintf("Correct. Try putting %s into practice in a small project.", topic)
		case "coding":
			return "Correct. Try a more complex algorithm or study related design patterns."
		default:
			return "Correct. Keep going with harder questions."
		}
	}

	switch c.QuestionType {
	case "choice", "multiple":
		return fmt.Sprintf("Incorrect. Revisit the basics of %s and compare what each option means.", topic)
	case "fill":
		return fmt.Sprintf("Incorrect. Review the core terms of %s and their definitions.", topic)
	case "short", "essay":
		return fmt.Sprintf("Incorrect. Study how %s works and read worked examples.", topic)
	case "coding":
		return fmt.Sprintf("Incorrect. Start from the basic syntax and build up your %s skills step by step.", topic)
	default:
		return "Incorrect. Review the related material and practice similar questions."
	}
}
