package bind

import (
	"net/netip"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type serverConfig struct {
	Host     string            `eon:"host"`
	Port     int               `eon:"port"`
	Ratio    float64           `eon:"ratio,omitempty"`
	Debug    bool              `eon:"debug,omitempty"`
	Tags     []string          `eon:"tags,omitempty"`
	Extra    map[string]int    `eon:"extra,omitempty"`
	Addr     netip.Addr        `eon:"addr,omitempty"`
	Internal string            `eon:"-"`
	Legacy   string            `json:"legacy,omitempty"`
	Notes    map[string]string `eon:"notes,omitempty"`
}

func TestMarshalStruct(t *testing.T) {
	cfg := serverConfig{
		Host:  "db.local",
		Port:  5432,
		Ratio: 0.5,
		Tags:  []string{"a", "b"},
	}
	out, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := "host: \"db.local\"\nport: 5432\nratio: 0.5\ntags: [\"a\", \"b\"]\n"
	if string(out) != want {
		t.Errorf("got %q want %q", out, want)
	}
}

func TestRoundTripStruct(t *testing.T) {
	in := serverConfig{
		Host:  "h",
		Port:  1,
		Debug: true,
		Extra: map[string]int{"x": 1, "y": 2},
		Addr:  netip.MustParseAddr("10.0.0.1"),
	}
	out, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var got serverConfig
	if err := Unmarshal(out, &got); err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	if !reflect.DeepEqual(in, got) {
		t.Errorf("got %+v want %+v", got, in)
	}
}

func TestUnmarshalFieldMatching(t *testing.T) {
	type cfg struct {
		MaxRetries int
		Name       string `eon:"name"`
	}
	var c cfg
	err := Unmarshal([]byte("max_retries: 3\nname: \"n\"\n"), &c)
	if err != nil {
		t.Fatal(err)
	}
	if c.MaxRetries != 3 || c.Name != "n" {
		t.Errorf("got %+v", c)
	}
	// exact field name works too
	c = cfg{}
	if err := Unmarshal([]byte("MaxRetries: 4"), &c); err != nil {
		t.Fatal(err)
	}
	if c.MaxRetries != 4 {
		t.Errorf("got %+v", c)
	}
	// unknown keys are rejected
	if err := Unmarshal([]byte("bogus: 1"), &c); err == nil {
		t.Error("expected unknown field error")
	} else if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestUnmarshalInterface(t *testing.T) {
	var v any
	err := Unmarshal([]byte(`
n: 42
f: 2.5
s: "x"
b: true
z: null
xs: [1, "two"]
m: {k: "v"}
c: "Rgb"(255, 0, 0)
`), &v)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"n":  int64(42),
		"f":  2.5,
		"s":  "x",
		"b":  true,
		"z":  nil,
		"xs": []any{int64(1), "two"},
		"m":  map[string]any{"k": "v"},
		"c":  Variant{Name: "Rgb", Args: []any{int64(255), int64(0), int64(0)}},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("unexpected value (-want +got):\n%s", diff)
	}
}

func TestMarshalVariant(t *testing.T) {
	out, err := Marshal(map[string]any{
		"color": Variant{Name: "Rgb", Args: []any{255, 0, 0}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "color: \"Rgb\"(255, 0, 0)\n"
	if string(out) != want {
		t.Errorf("got %q want %q", out, want)
	}
}

func TestBytesBase64(t *testing.T) {
	type blob struct {
		Data []byte `eon:"data"`
	}
	in := blob{Data: []byte("hello world")}
	out, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var got blob
	if err := Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if string(got.Data) != "hello world" {
		t.Errorf("got %q", got.Data)
	}
}

func TestUnmarshalNumericTargets(t *testing.T) {
	type nums struct {
		U8  uint8   `eon:"u8"`
		F32 float32 `eon:"f32"`
		I   int     `eon:"i"`
	}
	var n nums
	if err := Unmarshal([]byte("u8: 200\nf32: 1.5\ni: -3"), &n); err != nil {
		t.Fatal(err)
	}
	if n.U8 != 200 || n.F32 != 1.5 || n.I != -3 {
		t.Errorf("got %+v", n)
	}
	// overflow is an error
	if err := Unmarshal([]byte("u8: 300"), &n); err == nil {
		t.Error("expected overflow error")
	}
	// hex spellings land in ints fine
	if err := Unmarshal([]byte("i: 0xff"), &n); err != nil {
		t.Fatal(err)
	}
	if n.I != 255 {
		t.Errorf("i = %d", n.I)
	}
}

func TestUnmarshalNonStringMapKeys(t *testing.T) {
	var m map[int]string
	if err := Unmarshal([]byte("1: \"a\"\n2: \"b\""), &m); err != nil {
		t.Fatal(err)
	}
	if m[1] != "a" || m[2] != "b" {
		t.Errorf("got %v", m)
	}
}

func TestUnmarshalPointerAndNull(t *testing.T) {
	type cfg struct {
		P *int `eon:"p"`
	}
	var c cfg
	if err := Unmarshal([]byte("p: 7"), &c); err != nil {
		t.Fatal(err)
	}
	if c.P == nil || *c.P != 7 {
		t.Errorf("got %v", c.P)
	}
	if err := Unmarshal([]byte("p: null"), &c); err != nil {
		t.Fatal(err)
	}
	if c.P != nil {
		t.Error("null should reset the pointer")
	}
}

func TestUnmarshalBadTarget(t *testing.T) {
	var c serverConfig
	if err := Unmarshal([]byte("host: 1"), &c); err == nil {
		t.Error("number into string should fail")
	}
	if err := Unmarshal([]byte("host: \"x\""), c); err == nil {
		t.Error("non-pointer target should fail")
	}
}
