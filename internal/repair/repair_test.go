package repair_test

import (
	"testing"

	"github.com/josharsh/ensureJson/internal/repair"
)

func allOn() repair.Options {
	return repair.Options{
		StripComments:     true,
		NormalizeQuotes:   true,
		QuoteKeys:         true,
		FixTrailingCommas: true,
		Balance:           true,
	}
}

func TestStripComments(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"a": 1} // done`, `{"a": 1} `},
		{"{\n// note\n\"a\": 1\n}", "{\n\n\"a\": 1\n}"},
		{`{"a": /* inline */ 1}`, `{"a":   1}`},
		{`1/*x*/2`, `1 2`},
		{`{"url": "http://x"}`, `{"url": "http://x"}`},
		{`{"a": "//not a comment"}`, `{"a": "//not a comment"}`},
	}
	for _, c := range cases {
		if got := repair.StripComments(c.in); got != c.want {
			t.Errorf("StripComments(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeQuotes(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{'a': 1}`, `{"a": 1}`},
		{`{"a": 'x'}`, `{"a": "x"}`},
		{`{'a': 'say "hi"'}`, `{"a": "say \"hi\""}`},
		{`{'a': 'it\'s'}`, `{"a": "it's"}`},
		{`{"a": "untouched 'quotes'"}`, `{"a": "untouched 'quotes'"}`},
		{`{'a': 'line\nbreak'}`, `{"a": "line\nbreak"}`},
		{`everyone's data: {"a": 1}`, `everyone's data: {"a": 1}`},
		{`{"a": 'oops`, `{"a": "oops`},
	}
	for _, c := range cases {
		if got := repair.NormalizeQuotes(c.in); got != c.want {
			t.Errorf("NormalizeQuotes(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestQuoteBareKeys(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{a: 1, b: 2}`, `{"a": 1, "b": 2}`},
		{`{name: "x", age: 25}`, `{"name": "x", "age": 25}`},
		{`{a_1: 1}`, `{"a_1": 1}`},
		{`{nested: {inner: 1}}`, `{"nested": {"inner": 1}}`},
		{`{"quoted": 1}`, `{"quoted": 1}`},
		{`{a: true}`, `{"a": true}`},
		{`[true, false]`, `[true, false]`},
		{`{a : 1}`, `{"a" : 1}`},
		{`{"a": "b: c"}`, `{"a": "b: c"}`},
	}
	for _, c := range cases {
		if got := repair.QuoteBareKeys(c.in); got != c.want {
			t.Errorf("QuoteBareKeys(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRemoveTrailingCommas(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"a":1,"b":2,}`, `{"a":1,"b":2}`},
		{`[1,2,3,]`, `[1,2,3]`},
		{`{"a": [1, 2,], }`, `{"a": [1, 2] }`},
		{"{\"a\": 1,\n}", "{\"a\": 1\n}"},
		{`{"a": ",}"}`, `{"a": ",}"}`},
		{`{"a":1,"b":2}`, `{"a":1,"b":2}`},
	}
	for _, c := range cases {
		if got := repair.RemoveTrailingCommas(c.in); got != c.want {
			t.Errorf("RemoveTrailingCommas(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBalance(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"a": [1, 2, {"b": 3}`, `{"a": [1, 2, {"b": 3}]}`},
		{`{"users": [{"name": "Eve"}, {"name": "Frank"`, `{"users": [{"name": "Eve"}, {"name": "Frank"}]}`},
		{`{"a": "dangling`, `{"a": "dangling"}`},
		{`[[1, 2`, `[[1, 2]]`},
		{`{"a": 1}`, `{"a": 1}`},
		{`{"a": "}"`, `{"a": "}"}`},
		{`{"a": 1,`, `{"a": 1}`},
		{`[1, 2,`, `[1, 2]`},
		{"{\"a\": 1, \n", "{\"a\": 1 \n}"},
		{`{"a": 1, "b`, `{"a": 1, "b"}`},
	}
	for _, c := range cases {
		if got := repair.Balance(c.in); got != c.want {
			t.Errorf("Balance(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize_FullPipeline(t *testing.T) {
	in := `{
  name: "Grace Hopper",
  occupation: 'Computer Scientist', // pioneer
  achievements: [
    "COBOL inventor",
    "First compiler",
  ],
  born: 1906,
}`
	want := "{\n" +
		"  \"name\": \"Grace Hopper\",\n" +
		"  \"occupation\": \"Computer Scientist\", \n" + // the stripped comment leaves its leading space behind
		"  \"achievements\": [\n" +
		"    \"COBOL inventor\",\n" +
		"    \"First compiler\"\n" +
		"  ],\n" +
		"  \"born\": 1906\n" +
		"}"
	if got := repair.Normalize(in, allOn()); got != want {
		t.Errorf("Normalize pipeline = %q, want %q", got, want)
	}
}

// Every pass must leave strict JSON unchanged.
func TestPasses_IdempotentOnStrictJSON(t *testing.T) {
	strict := []string{
		`{"a":1,"b":[true,false,null],"c":{"d":"e"}}`,
		`[1, 2.5, -3e10, "s", {"k": "v"}]`,
		`"just a string with // and /* and , } ] inside"`,
		`{"apostrophe": "it's", "brace": "{[", "comma": ",]"}`,
		`  {"leading": "ws"}  `,
	}
	for _, s := range strict {
		for _, p := range repair.Passes(allOn()) {
			if got := p.Apply(s); got != s {
				t.Errorf("pass %s changed strict JSON %q into %q", p.Name, s, got)
			}
		}
	}
}

// Passes are idempotent on their own output.
func TestPasses_IdempotentOnOwnOutput(t *testing.T) {
	inputs := []string{
		`{a: 'x', "b": 'y',} // tail`,
		`{"a": [1, 2, {"b": 3}`,
		`{name: "Bob", hobbies: ["reading", "coding",],}`,
		`{"a": 1,`,
	}
	for _, in := range inputs {
		for _, p := range repair.Passes(allOn()) {
			once := p.Apply(in)
			twice := p.Apply(once)
			if once != twice {
				t.Errorf("pass %s not idempotent: %q -> %q -> %q", p.Name, in, once, twice)
			}
		}
	}
}

func TestPasses_DisabledFlagSkipsPass(t *testing.T) {
	opt := allOn()
	opt.FixTrailingCommas = false
	got := repair.Normalize(`{"a":1,}`, opt)
	if got != `{"a":1,}` {
		t.Fatalf("disabled pass must not run: got %q", got)
	}
	if n := len(repair.Passes(repair.Options{})); n != 0 {
		t.Fatalf("no flags enabled should yield no passes, got %d", n)
	}
}
