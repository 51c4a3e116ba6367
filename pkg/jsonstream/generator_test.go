package jsonstream

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"mcpist/jsonwire/pkg/jsonval"
)

func TestGeneratorCompact(t *testing.T) {
	var buf bytes.Buffer
	g := NewGenerator(&buf)

	steps := []error{
		g.BeginObject(),
		g.Name("method"),
		g.String("compute"),
		g.Name("args"),
		g.BeginArray(),
		g.Number(jsonval.Int64Number(1)),
		g.Bool(false),
		g.Null(),
		g.EndArray(),
		g.EndObject(),
		g.Close(),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	want := `{"method":"compute","args":[1,false,null]}`
	if got := buf.String(); got != want {
		t.Errorf("output = %s, want %s", got, want)
	}
}

func TestGeneratorPretty(t *testing.T) {
	var buf bytes.Buffer
	g := NewGenerator(&buf)
	g.SetIndent("  ")

	v, err := ParseString(`{"a": 1, "b": [true, null]}`)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Write(v); err != nil {
		t.Fatal(err)
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		`{`,
		`  "a": 1,`,
		`  "b": [`,
		`    true,`,
		`    null`,
		`  ]`,
		`}`,
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestGeneratorMisuse(t *testing.T) {
	tests := []struct {
		name  string
		drive func(g *Generator) error
	}{
		{"name outside object", func(g *Generator) error {
			return g.Name("a")
		}},
		{"name inside array", func(g *Generator) error {
			if err := g.BeginArray(); err != nil {
				return err
			}
			return g.Name("a")
		}},
		{"value without name", func(g *Generator) error {
			if err := g.BeginObject(); err != nil {
				return err
			}
			return g.Bool(true)
		}},
		{"close wrong container", func(g *Generator) error {
			if err := g.BeginArray(); err != nil {
				return err
			}
			return g.EndObject()
		}},
		{"close unopened", func(g *Generator) error {
			return g.EndArray()
		}},
		{"name then close", func(g *Generator) error {
			if err := g.BeginObject(); err != nil {
				return err
			}
			if err := g.Name("a"); err != nil {
				return err
			}
			return g.EndObject()
		}},
		{"two top-level values", func(g *Generator) error {
			if err := g.Null(); err != nil {
				return err
			}
			return g.Null()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(&bytes.Buffer{})
			err := tt.drive(g)
			if err == nil {
				t.Fatal("expected a structural error")
			}
			var syn *SyntacticError
			if !errors.As(err, &syn) {
				t.Errorf("error = %v, want *SyntacticError", err)
			}
			// Misuse is sticky.
			if err2 := g.Null(); err2 == nil {
				t.Error("generator must stay failed after misuse")
			}
		})
	}
}

func TestGeneratorCloseIncomplete(t *testing.T) {
	var buf bytes.Buffer
	g := NewGenerator(&buf)
	if err := g.BeginArray(); err != nil {
		t.Fatal(err)
	}
	if err := g.Close(); err == nil {
		t.Fatal("closing with an open container must fail")
	}
	// The buffered output was still flushed on the error path.
	if buf.String() != "[" {
		t.Errorf("flushed output = %q", buf.String())
	}

	g2 := NewGenerator(&bytes.Buffer{})
	if err := g2.Close(); err == nil {
		t.Error("closing before any value must fail")
	}
}

func TestGeneratorWritesViews(t *testing.T) {
	arr := jsonval.CombineArrays(
		jsonval.NewArray(jsonval.Int64Number(1)),
		jsonval.NewArray(jsonval.Int64Number(2)),
	)
	obj := jsonval.MergeObjects(
		jsonval.NewObject(jsonval.Field{Key: "a", Value: arr}),
		jsonval.NewObject(jsonval.Field{Key: "b", Value: jsonval.String("x")}),
	)

	got, err := Serialize(obj, "")
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":[1,2],"b":"x"}`
	if string(got) != want {
		t.Errorf("Serialize = %s, want %s", got, want)
	}
}

func TestSerializeEscaping(t *testing.T) {
	// Escaping is delegated to jx; assert through a reparse rather than
	// exact bytes.
	original := jsonval.String("line\nbreak \"quoted\" back\\slash ")
	text, err := Serialize(original, "")
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseBytes(text)
	if err != nil {
		t.Fatalf("reparse %q: %v", text, err)
	}
	if !jsonval.Equal(original, back) {
		t.Errorf("escaping round trip changed %q", text)
	}
}
