package eon

import (
	"testing"

	"github.com/eon-format/go-eon/ir"
)

func TestReformat(t *testing.T) {
	src := []byte(`// database settings
db:{host:"localhost",port:5432,tags:["a","b"]}
retries:[1,2,3]
`)
	want := `// database settings
db: {
	host: "localhost"
	port: 5432
	tags: ["a", "b"]
}

retries: [1, 2, 3]
`
	got, err := Reformat(src)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	// idempotent
	again, err := Reformat(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != string(got) {
		t.Error("reformatting formatted output changed it")
	}
}

func TestParseValueStripsComments(t *testing.T) {
	n, err := ParseValue([]byte("// c\nx: 1 // t\n"))
	if err != nil {
		t.Fatal(err)
	}
	if n.Comment != nil || n.Fields[0].Comment != nil || n.Values[0].Comment != nil {
		t.Error("comments should be absent")
	}
}

func TestParseJSONDocuments(t *testing.T) {
	// ordinary JSON is also valid here
	srcs := []string{
		`{"a": 1, "b": [true, false, null], "c": {"d": "e"}}`,
		`[1, 2.5, -3e2, "x"]`,
		`"just a string"`,
		`{"s": "a\/b\u0041\b\f\ud83d\ude00"}`,
	}
	for _, src := range srcs {
		if _, err := Parse([]byte(src)); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestFormatProgrammatic(t *testing.T) {
	n := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("name"), Val: ir.FromString("alice")},
		{Key: ir.FromString("age"), Val: ir.FromInt(30)},
	})
	got, err := Format(n)
	if err != nil {
		t.Fatal(err)
	}
	want := "name: \"alice\"\nage: 30\n"
	if string(got) != want {
		t.Errorf("got %q want %q", got, want)
	}
}
