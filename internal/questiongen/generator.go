// Package questiongen produces templated placeholder questions. It is the
// fallback when model output cannot be salvaged and when regeneration keeps
// colliding with questions already accepted.
//
// Output depends only on the generator seed and the arguments, so tests can
// pin it down. Every question it returns passes Validate.
package questiongen

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"

	"github.com/remaimber-it/quizcore/internal/domain/question"
)

// Generator builds default questions from an injected seed.
type Generator struct {
	seed int64
}

func New(seed int64) *Generator {
	return &Generator{seed: seed}
}

var topicSeparator = regexp.MustCompile(`[,，]`)

// MainTopic returns the first entry of a comma separated topic list.
func MainTopic(topic string) string {
	main := strings.TrimSpace(topicSeparator.Split(topic, 2)[0])
	if main == "" {
		return "the subject"
	}
	return main
}

// Question returns the default question of type t for position index.
func (g *Generator) Question(t question.Type, topic, difficulty string, index int) question.Question {
	return g.Reseed(t, topic, difficulty, index, 0)
}

// Reseed is Question with a distinct attempt number, used to draw another
// candidate for the same position after a duplicate.
func (g *Generator) Reseed(t question.Type, topic, difficulty string, index, attempt int) question.Question {
	rng := g.rng(index, attempt)
	main := MainTopic(topic)

	q := question.Question{
		ID:         index + 1,
		Score:      question.DefaultScore,
		Difficulty: difficulty,
	}

	switch t {
	case question.TypeMultiple:
		q.Title = g.title(multipleTitles, index, attempt, main)
		opts, answer := choiceOptions(rng, main, true)
		q.Answer = answer
		q.Explanation = fmt.Sprintf("Several statements about %s can hold at once.", main)
		q.Variant = question.Choice{Options: opts, Multiple: true}
	case question.TypeFill:
		q.Title = g.title(fillTitles, index, attempt, main)
		q.Answer = pick(rng, fillAnswers)
		q.Explanation = fmt.Sprintf("Checks the basic vocabulary of %s.", main)
		q.Variant = question.Fill{}
	case question.TypeShort:
		q.Title = g.title(shortTitles, index, attempt, main)
		ref := pick(rng, shortAnswers)(main)
		q.Answer = ref
		q.Explanation = fmt.Sprintf("A complete answer covers the main ideas of %s.", main)
		q.Variant = question.Short{ReferenceAnswer: ref}
	case question.TypeCoding:
		q.Title = g.title(codingTitles, index, attempt, main)
		task := pick(rng, codingTasks)
		q.Answer = task.answer
		q.Explanation = fmt.Sprintf("Applies %s to a small, concrete problem.", main)
		q.Variant = question.Coding{
			Requirements: task.requirements,
			Examples:     []question.Example{{Input: task.input, Output: task.output}},
		}
	case question.TypeEssay:
		q.Title = g.title(essayTitles, index, attempt, main)
		points := keyPoints(rng, main)
		q.Answer = fmt.Sprintf("A strong essay on %s discusses %s.", main, strings.Join(points, "; "))
		q.Explanation = fmt.Sprintf("Requires a structured argument about %s.", main)
		q.Variant = question.Essay{KeyPoints: points}
	default:
		q.Title = g.title(choiceTitles, index, attempt, main)
		opts, answer := choiceOptions(rng, main, false)
		q.Answer = answer
		q.Explanation = fmt.Sprintf("Covers the fundamentals of %s.", main)
		q.Variant = question.Choice{Options: opts}
	}

	return q
}

// Defaults builds the questions a quota list asks for, numbered from 1 in
// quota order. Score and difficulty come from each quota.
func (g *Generator) Defaults(subject string, quotas []question.Quota) []question.Question {
	var out []question.Question

	for _, quota := range quotas {
		for i := 0; i < quota.Count; i++ {
			q := g.Question(quota.Type, subject, quota.Difficulty, len(out))
			if quota.Score > 0 {
				q.Score = quota.Score
			}
			out = append(out, q)
		}
	}

	return out
}

func (g *Generator) rng(index, attempt int) *rand.Rand {
	s := g.seed + int64(index)*1000 + int64(attempt)
	return rand.New(rand.NewPCG(uint64(s), uint64(s)>>32|1))
}

// title rotates through templates, so neighbouring positions and
// successive attempts at one position get different wording.
func (g *Generator) title(templates []template, index, attempt int, topic string) string {
	i := (uint64(g.seed) + uint64(index) + uint64(attempt)) % uint64(len(templates))
	return templates[i](topic)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

var letters = []string{"A", "B", "C", "D"}

// choiceOptions labels a shuffled option set A-D and draws the answer.
func choiceOptions(rng *rand.Rand, topic string, multiple bool) ([]string, string) {
	set := pick(rng, optionSets)
	phrases := make([]string, len(set))
	copy(phrases, set)
	rng.Shuffle(len(phrases), func(i, j int) { phrases[i], phrases[j] = phrases[j], phrases[i] })

	opts := make([]string, len(phrases))
	for i, p := range phrases {
		opts[i] = fmt.Sprintf("%s. %s %s", letters[i], p, topic)
	}

	if !multiple {
		return opts, letters[rng.IntN(len(letters))]
	}

	perm := rng.Perm(len(letters))[:2+rng.IntN(2)]
	slices.Sort(perm)
	answer := make([]string, len(perm))
	for i, p := range perm {
		answer[i] = letters[p]
	}
	return opts, strings.Join(answer, ",")
}

func keyPoints(rng *rand.Rand, topic string) []string {
	perm := rng.Perm(len(essayPoints))[:3]
	points := make([]string, len(perm))
	for i, p := range perm {
		points[i] = essayPoints[p](topic)
	}
	return points
}
