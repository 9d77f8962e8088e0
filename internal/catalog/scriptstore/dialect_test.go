package scriptstore

import "testing"

func TestLiteralToJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare keys", in: "{ a: 1, b_2: true }", want: `{ "a": 1, "b_2": true }`},
		{name: "single quotes", in: `['it\'s', "say \"hi\""]`, want: `["it's", "say \"hi\""]`},
		{name: "trailing commas", in: "[ {a: 1,}, ]", want: `[ {"a": 1} ]`},
		{name: "comments", in: "[ // note\n 1, /* two */ 2 ]", want: "[ \n 1,  2 ]"},
		{name: "undefined", in: "[undefined, +3]", want: "[null, 3]"},
		{name: "unicode escapes", in: `['中\x41\u{1F600}']`, want: `["中A😀"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := literalToJSON([]byte(tc.in))
			if err != nil {
				t.Fatalf("literalToJSON: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestLiteralToJSONRejectsExpressions(t *testing.T) {
	for _, in := range []string{"[foo]", "[`a${b}`]", "['open", "[1 * 2]"} {
		if _, err := literalToJSON([]byte(in)); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestJSONToLiteralQuotesNonIdentifierKeys(t *testing.T) {
	got, err := jsonToLiteral([]byte(`{"plain": "a", "with-dash": "b "}`))
	if err != nil {
		t.Fatalf("jsonToLiteral: %v", err)
	}
	want := `{plain: 'a', 'with-dash': 'b '}`
	if string(got) != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestLocateSkipsBracketsInStringsAndComments(t *testing.T) {
	src := []byte("const items = [ ']', /* ] */ \"[\", // ]\n [1] ] ;\nnext();")
	loc, err := locate(src, "items")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if string(src[loc.end:]) != "\nnext();" {
		t.Fatalf("unexpected span end, rest %q", src[loc.end:])
	}
	if loc.keyword != "const" {
		t.Fatalf("unexpected keyword %q", loc.keyword)
	}
}
