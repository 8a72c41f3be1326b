package salvage_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/remaimber-it/quizcore/internal/salvage"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: "{}"},
		{name: "blank", input: "  \n\t ", want: "{}"},
		{name: "only fences", input: "```json\n```", want: "{}"},
		{name: "fenced object", input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", input: "```\n[1,2]\n```", want: "[1,2]"},
		{name: "bom", input: "\uFEFF{\"a\":1}", want: `{"a":1}`},
		{name: "leading prose", input: "Here you go: {\"a\":1}", want: `{"a":1}`},
		{name: "array start wins when first", input: "list [1, {\"a\":2}]", want: `[1, {"a":2}]`},
		{name: "trailing commas", input: `{"a":[1,2,],"b":3,   }`, want: `{"a":[1,2],"b":3}`},
		{name: "repeated trailing commas", input: `{"a":1,,}`, want: `{"a":1}`},
		{name: "four spaces kept", input: `{"a":1,    }`, want: `{"a":1,    }`},
		{name: "no json start", input: "sorry, I cannot help", want: "sorry, I cannot help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := salvage.Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"```json\n{\"questions\":[{\"id\":1,},]}\n```\n\nthanks",
		"\uFEFF \uFEFF prose without json",
		"``` ``` {\"a\":\"``\"}",
		`{"a":1,,,}`,
		"text } then { \"b\": [1 , ] }",
		"`````",
	}

	for _, in := range inputs {
		once := salvage.Normalize(in)
		twice := salvage.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSanitizeEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "valid escapes kept", input: `{"a":"x\"y\\z\n\t\u00e9\/"}`, want: `{"a":"x\"y\\z\n\t\u00e9\/"}`},
		{name: "invalid escape dropped", input: `{"re":"\d+\s"}`, want: `{"re":"d+s"}`},
		{name: "latex", input: `{"f":"\(x^2\)"}`, want: `{"f":"(x^2)"}`},
		{name: "trailing backslash", input: `abc\`, want: `abc`},
		{name: "escaped backslash then bad escape", input: `"\\\q"`, want: `"\\q"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := salvage.SanitizeEscapes(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeEscapes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeEscapes_Postcondition(t *testing.T) {
	inputs := []string{
		`\a\b\c\d\e\f\g\h\i\j\k\l\m\n\o\p\q\r\s\t\u\v\w\x\y\z`,
		`\\\\\\\`,
		`"path": "C:\Users\new\temp"`,
		`\`,
		`"\'single\'"`,
	}

	for _, in := range inputs {
		out := salvage.SanitizeEscapes(in)
		for i := 0; i < len(out); i++ {
			if out[i] != '\\' {
				continue
			}
			if i+1 >= len(out) || !strings.ContainsRune(`"\/bfnrtu`, rune(out[i+1])) {
				t.Errorf("SanitizeEscapes(%q) = %q: backslash at %d not followed by a valid escape", in, out, i)
				break
			}
			i++ // the escaped character
		}
	}
}

func TestFindMatchingBracket(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		open  byte
		close byte
		want  int
	}{
		{name: "flat braces", text: `{"a":1}`, start: 1, open: '{', close: '}', want: 6},
		{name: "nested braces", text: `{"a":{"b":{}}}x`, start: 1, open: '{', close: '}', want: 13},
		{name: "brace in string", text: `{"a":"}"}`, start: 1, open: '{', close: '}', want: 8},
		{name: "escaped quote in string", text: `{"a":"\"}"}`, start: 1, open: '{', close: '}', want: 10},
		{name: "array", text: `[1,[2,[3]],"]"]`, start: 1, open: '[', close: ']', want: 14},
		{name: "unclosed", text: `[1,[2,3]`, start: 1, open: '[', close: ']', want: -1},
		{name: "negative start", text: `[]`, start: -1, open: '[', close: ']', want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := salvage.FindMatchingBracket(tt.text, tt.start, tt.open, tt.close)
			if got != tt.want {
				t.Errorf("FindMatchingBracket(%q, %d) = %d, want %d", tt.text, tt.start, got, tt.want)
			}
		})
	}
}

func TestRecoverTruncated_TrailingProse(t *testing.T) {
	doc := `{"questions":[{"id":1,"title":"T1","answer":"A"}]}`
	input := doc + "\n\nNote: generated by model"

	got, ok := salvage.RecoverTruncated(input)
	if !ok {
		t.Fatal("expected recovery to succeed")
	}
	if got != doc {
		t.Errorf("expected %q, got %q", doc, got)
	}

	var v map[string]any
	if err := json.Unmarshal([]byte(got), &v); err != nil {
		t.Errorf("expected recovered prefix to parse, got %v", err)
	}
}

func TestRecoverTruncated(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "cut inside second object",
			input:  `{"a":1}{"b":{"c":`,
			want:   `{"a":1}`,
			wantOK: true,
		},
		{
			name:   "last of several",
			input:  `{"a":1} {"b":2} {"c"`,
			want:   `{"a":1} {"b":2}`,
			wantOK: true,
		},
		{
			name:   "braces inside strings ignored",
			input:  `{"a":"}{"} trailing`,
			want:   `{"a":"}{"}`,
			wantOK: true,
		},
		{
			name:   "stray closer before object",
			input:  `} {"a":1}`,
			want:   `} {"a":1}`,
			wantOK: true,
		},
		{
			name:   "never closed",
			input:  `{"questions":[{"id":1,"title":"cut`,
			wantOK: false,
		},
		{
			name:   "no braces",
			input:  `plain text`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := salvage.RecoverTruncated(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractArrayField(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		field  string
		want   string
		wantOK bool
	}{
		{
			name:   "broken envelope",
			input:  `{"meta": {"x": 1, "questions": [{"id":1},{"id":2}] garbage`,
			field:  "questions",
			want:   `{"questions":[{"id":1},{"id":2}]}`,
			wantOK: true,
		},
		{
			name:   "bracket inside string",
			input:  `{"questions":[{"t":"a ] b"}]`,
			field:  "questions",
			want:   `{"questions":[{"t":"a ] b"}]}`,
			wantOK: true,
		},
		{
			name:   "field missing",
			input:  `{"items":[1]}`,
			field:  "questions",
			wantOK: false,
		},
		{
			name:   "no opening bracket",
			input:  `{"questions": null}`,
			field:  "questions",
			wantOK: false,
		},
		{
			name:   "array never closed",
			input:  `{"questions":[{"id":1},{"id":2`,
			field:  "questions",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := salvage.ExtractArrayField(tt.input, tt.field)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestReconstructor(t *testing.T) {
	input := `{"questions":[
{"id":1,"title":"first",
 "answer":"A","explanation":"because"},
{"id":2,"title":"second","answer":"B","explanation":"also"},
{"id":3,"title":"third","answer":"C","explanation":"cut off`

	got, ok := salvage.DefaultReconstructor().Reconstruct(input, "questions")
	if !ok {
		t.Fatal("expected reconstruction to succeed")
	}

	var doc struct {
		Questions []map[string]any `json:"questions"`
	}
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("expected valid JSON, got %v: %s", err, got)
	}
	if len(doc.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(doc.Questions))
	}
	if doc.Questions[1]["title"] != "second" {
		t.Errorf("expected second title, got %v", doc.Questions[1]["title"])
	}
}

func TestReconstructor_SkipsBrokenMatches(t *testing.T) {
	// The first item has no explanation, so the lazy match runs into the
	// second item and is not a valid object on its own.
	input := `{"id":1,"title":"x"},{"id":2,"explanation":"y"} {"id":3,"explanation":"z"}`

	got, ok := salvage.DefaultReconstructor().Reconstruct(input, "questions")
	if !ok {
		t.Fatal("expected reconstruction to succeed")
	}
	if got != `{"questions":[{"id":3,"explanation":"z"}]}` {
		t.Errorf("unexpected document %s", got)
	}
}

func TestReconstructor_Limit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 15; i++ {
		b.WriteString(`{"id":1,"explanation":"e"} `)
	}

	got, ok := salvage.DefaultReconstructor().Reconstruct(b.String(), "questions")
	if !ok {
		t.Fatal("expected reconstruction to succeed")
	}
	if n := strings.Count(got, `"id"`); n != salvage.MaxReconstructedItems {
		t.Errorf("expected %d items, got %d", salvage.MaxReconstructedItems, n)
	}
}

func TestReconstructor_NothingFound(t *testing.T) {
	if _, ok := salvage.DefaultReconstructor().Reconstruct("no items here", "questions"); ok {
		t.Error("expected no reconstruction")
	}
}

func TestReconstructor_CustomFields(t *testing.T) {
	r := salvage.NewReconstructor("title", "answer", 0)
	got, ok := r.Reconstruct(`junk {"title":"Q","answer":"A"} junk`, "items")
	if !ok {
		t.Fatal("expected reconstruction to succeed")
	}
	if got != `{"items":[{"title":"Q","answer":"A"}]}` {
		t.Errorf("unexpected document %s", got)
	}
}

func TestParseLabeled(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		withOptions bool
		wantOK      bool
		wantTitle   string
		wantAnswer  string
		wantOptions int
	}{
		{
			name:        "choice lines",
			input:       "题目：Go 的零值是什么\nA. nil\nB. 0\n答案：A",
			withOptions: true,
			wantOK:      true,
			wantTitle:   "Go 的零值是什么",
			wantAnswer:  "A",
			wantOptions: 2,
		},
		{
			name:       "reference answer label",
			input:      "问题 解释 defer 的执行顺序\n参考答案：后进先出",
			wantOK:     true,
			wantTitle:  "解释 defer 的执行顺序",
			wantAnswer: "后进先出",
		},
		{
			name:       "english labels",
			input:      "Here you go.\nQuestion: What does len return for a nil slice?\nAnswer: 0",
			wantOK:     true,
			wantTitle:  "What does len return for a nil slice?",
			wantAnswer: "0",
		},
		{
			name:       "options ignored without choice",
			input:      "题目：填空\nA. x\n答案：y",
			wantOK:     true,
			wantTitle:  "填空",
			wantAnswer: "y",
		},
		{name: "no title", input: "A. x\nB. y\n答案：A", withOptions: true},
		{name: "prose", input: "Questions are hard to write."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := salvage.ParseLabeled(tt.input, tt.withOptions)
			if ok != tt.wantOK {
				t.Fatalf("expected ok %v, got %v (%q)", tt.wantOK, ok, out)
			}
			if !ok {
				return
			}

			var got struct {
				Title           string   `json:"title"`
				Answer          string   `json:"answer"`
				ReferenceAnswer string   `json:"referenceAnswer"`
				Options         []string `json:"options"`
			}
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("expected valid JSON, got %q: %v", out, err)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("expected title %q, got %q", tt.wantTitle, got.Title)
			}
			if got.Answer != tt.wantAnswer || got.ReferenceAnswer != tt.wantAnswer {
				t.Errorf("expected answer %q, got %q and %q", tt.wantAnswer, got.Answer, got.ReferenceAnswer)
			}
			if len(got.Options) != tt.wantOptions {
				t.Errorf("expected %d options, got %v", tt.wantOptions, got.Options)
			}
		})
	}
}
