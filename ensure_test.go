package ensurejson_test

import (
	"reflect"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"

	ensurejson "github.com/josharsh/ensureJson"
)

// mustParse fails the test on error.
func mustParse(t *testing.T, raw string, opts ...ensurejson.Options) ensurejson.Value {
	t.Helper()
	v, err := ensurejson.Parse(raw, opts...)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", raw, err)
	}
	return v
}

// sameAsReference checks a parsed Value against goccy/go-json decoding the
// identical strict-JSON text.
func sameAsReference(t *testing.T, strict string, v ensurejson.Value) {
	t.Helper()
	dec := gojson.NewDecoder(strings.NewReader(strict))
	dec.UseNumber()
	var want any
	if err := dec.Decode(&want); err != nil {
		t.Fatalf("reference parser rejected %q: %v", strict, err)
	}
	if got := v.Interface(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse(%q) = %#v, reference = %#v", strict, got, want)
	}
}

func TestParse_StrictJSONMatchesReferenceParser(t *testing.T) {
	cases := []string{
		`{"a":1}`,
		`{"name":"Alice","age":30,"tags":["x","y"],"meta":{"ok":true,"score":2.5},"none":null}`,
		`[1,2.5,-3e2,"s",false,null]`,
		`{"nested":{"deep":[{"k":"v"}]}}`,
	}
	for _, s := range cases {
		sameAsReference(t, s, mustParse(t, s))
	}
}

func TestParse_MarkdownFence(t *testing.T) {
	v := mustParse(t, "```json\n{\"a\":1}\n```")
	a, ok := v.Get("a")
	if !ok || a.Number() != "1" {
		t.Fatalf("got %s", v)
	}
}

func TestParse_FenceInsideProse(t *testing.T) {
	raw := "Here's your data:\n```json\n{\n  \"name\": \"Alice\",\n  \"age\": 30\n}\n```\nanything else?"
	v := mustParse(t, raw)
	if name, _ := v.Get("name"); name.Str() != "Alice" {
		t.Fatalf("got %s", v)
	}
}

func TestParse_TrailingCommas(t *testing.T) {
	v := mustParse(t, `{"a":1,"b":2,}`)
	if v.String() != `{"a":1,"b":2}` {
		t.Fatalf("got %s", v)
	}
	v = mustParse(t, `[1,2,3,]`)
	if v.String() != `[1,2,3]` {
		t.Fatalf("got %s", v)
	}
}

func TestParse_UnquotedKeys(t *testing.T) {
	v := mustParse(t, `{a: 1, b: 2}`)
	if v.String() != `{"a":1,"b":2}` {
		t.Fatalf("got %s", v)
	}
}

func TestParse_MixedQuotes(t *testing.T) {
	v := mustParse(t, `{a: 'x', "b": 'y'}`)
	if v.String() != `{"a":"x","b":"y"}` {
		t.Fatalf("got %s", v)
	}
}

func TestParse_BalancesMissingClosers(t *testing.T) {
	v := mustParse(t, `{"a": [1, 2, {"b": 3}`)
	if v.String() != `{"a":[1,2,{"b":3}]}` {
		t.Fatalf("closers must be appended in correct order: %s", v)
	}
}

func TestParse_TruncatedAfterComma(t *testing.T) {
	v := mustParse(t, `{"a": 1,`)
	if v.String() != `{"a":1}` {
		t.Fatalf("got %s", v)
	}
	v = mustParse(t, `[1, 2,`)
	if v.String() != `[1,2]` {
		t.Fatalf("got %s", v)
	}
}

func TestParse_ApostropheInSurroundingProse(t *testing.T) {
	v := mustParse(t, `Here's your data: {"a": 1}`)
	if v.String() != `{"a":1}` {
		t.Fatalf("got %s", v)
	}
	v = mustParse(t, `I'll keep it short: {name: 'Bob', age: 30} and that's all.`)
	if name, _ := v.Get("name"); name.Str() != "Bob" {
		t.Fatalf("got %s", v)
	}
}

func TestParse_Comments(t *testing.T) {
	v := mustParse(t, "{\n  \"a\": 1, // count\n  /* block */ \"b\": 2\n}")
	if v.String() != `{"a":1,"b":2}` {
		t.Fatalf("got %s", v)
	}
}

func TestParse_ComplexLLMOutput(t *testing.T) {
	raw := "I'll provide the user data in JSON format:\n\n```json\n{\n  name: \"Grace Hopper\",\n  occupation: 'Computer Scientist',\n  achievements: [\n    \"COBOL inventor\",\n    \"First compiler\",\n    \"Debugging pioneer\",\n  ],\n  born: 1906,\n}\n```\n\nHope that helps!"
	v := mustParse(t, raw)
	if occ, _ := v.Get("occupation"); occ.Str() != "Computer Scientist" {
		t.Fatalf("got %s", v)
	}
	ach, _ := v.Get("achievements")
	if ach.Len() != 3 {
		t.Fatalf("achievements = %s", ach)
	}
	if born, _ := v.Get("born"); born.Number() != "1906" {
		t.Fatalf("born = %s", born.Number())
	}
}

func TestParse_NotJSONAtAll(t *testing.T) {
	_, err := ensurejson.Parse("not json at all")
	fe, ok := ensurejson.AsFixError(err)
	if !ok {
		t.Fatalf("expected *FixError, got %v", err)
	}
	if fe.Stage != ensurejson.StageExtraction {
		t.Fatalf("stage = %v, want extraction", fe.Stage)
	}
	if fe.Raw != "not json at all" {
		t.Fatalf("raw input not carried: %q", fe.Raw)
	}
}

func TestParse_DuplicateKeysLastWriteWins(t *testing.T) {
	v := mustParse(t, `{"a":1,"a":2}`)
	if v.String() != `{"a":2}` {
		t.Fatalf("got %s", v)
	}
}

func TestParse_FirstCandidateDiagnosticOnTotalFailure(t *testing.T) {
	// The fence holds garbage that no pass repairs; the fallback candidates
	// fail too. The error must describe the fenced candidate.
	raw := "```json\n{\"a\": @@@}\n```"
	_, err := ensurejson.Parse(raw)
	fe, ok := ensurejson.AsFixError(err)
	if !ok {
		t.Fatalf("expected *FixError, got %v", err)
	}
	if fe.Stage != ensurejson.StageParsing {
		t.Fatalf("stage = %v, want parsing", fe.Stage)
	}
	if fe.Offset < 0 {
		t.Fatalf("expected a concrete offset, got %d", fe.Offset)
	}
	if fe.Raw != raw {
		t.Fatalf("raw input not carried")
	}
}

func TestParse_CandidateFallback(t *testing.T) {
	// The first fence is hopeless; the second parses.
	raw := "```json\n@@@{@@@\n```\n```json\n{\"ok\": true}\n```"
	v := mustParse(t, raw)
	if okv, _ := v.Get("ok"); !okv.Bool() {
		t.Fatalf("fallback to second fence failed: %s", v)
	}
}

func TestParse_IncompleteNestedStructure(t *testing.T) {
	v := mustParse(t, `{"users": [{"name": "Eve"}, {"name": "Frank"`)
	users, _ := v.Get("users")
	if users.Len() != 2 {
		t.Fatalf("got %s", v)
	}
	second := users.Index(1)
	if name, _ := second.Get("name"); name.Str() != "Frank" {
		t.Fatalf("got %s", v)
	}
}

func TestParse_DanglingString(t *testing.T) {
	v := mustParse(t, `{"note": "unfinished`)
	if note, _ := v.Get("note"); note.Str() != "unfinished" {
		t.Fatalf("got %s", v)
	}
}

func TestParse_OptionsDisablePasses(t *testing.T) {
	opt := ensurejson.DefaultOptions()
	opt.FixTrailingCommas = false
	if _, err := ensurejson.Parse(`{"a":1,}`, opt); err == nil {
		t.Fatal("disabled trailing-comma pass must leave the violation in place")
	}

	opt = ensurejson.DefaultOptions()
	opt.BalanceBrackets = false
	if _, err := ensurejson.Parse(`{"a": [1, 2`, opt); err == nil {
		t.Fatal("disabled balancing must not close brackets")
	}

	opt = ensurejson.DefaultOptions()
	opt.QuoteUnquotedKeys = false
	if _, err := ensurejson.Parse(`{a: 1}`, opt); err == nil {
		t.Fatal("disabled key quoting must leave bare keys in place")
	}

	opt = ensurejson.DefaultOptions()
	opt.StripMarkdownFences = false
	// Without the fence scan the brace region inside the fence still parses.
	v, err := ensurejson.Parse("```json\n{\"a\":1}\n```", opt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.String() != `{"a":1}` {
		t.Fatalf("got %s", v)
	}
}

func TestParse_LastOptionsWins(t *testing.T) {
	off := ensurejson.Options{}
	on := ensurejson.DefaultOptions()
	if _, err := ensurejson.Parse(`{"a":1,}`, off, on); err != nil {
		t.Fatalf("last Options should apply: %v", err)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	obj := ensurejson.Object()
	obj.Set("z", ensurejson.Number("1"))
	obj.Set("a", ensurejson.Array(ensurejson.Bool(true), ensurejson.Null(), ensurejson.Str("s")))
	obj.Set("n", ensurejson.Number("-2.5e3"))
	v := ensurejson.Array(obj, ensurejson.Str(`quotes " and \ slashes`))

	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	back := mustParse(t, string(out))
	if !back.Equal(v) {
		t.Fatalf("round trip mismatch:\n  in:  %s\n  out: %s", v, back)
	}
}

func TestParseAs_DelegatesToSchema(t *testing.T) {
	s := upperSchema{}
	got, err := ensurejson.ParseAs[string]("```json\n{word: 'hello'}\n```", s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "HELLO" {
		t.Fatalf("got %q", got)
	}

	if _, err := ensurejson.ParseAs[string]("no json here", s); err == nil {
		t.Fatal("extraction failure must surface before schema validation")
	}
}

// upperSchema is a stub Schema used to verify ParseAs wiring: it uppercases
// the "word" field of an object.
type upperSchema struct{}

func (upperSchema) Parse(v ensurejson.Value) (string, error) {
	w, ok := v.Get("word")
	if !ok || w.Kind() != ensurejson.KindString {
		return "", ensurejson.Issues{{Path: "/word", Code: ensurejson.CodeInvalidType, Message: "expected string"}}
	}
	return strings.ToUpper(w.Str()), nil
}
