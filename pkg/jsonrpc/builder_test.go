package jsonrpc

import (
	"errors"
	"strings"
	"testing"

	"mcpist/jsonwire/pkg/jsonval"
)

func TestRequestBuilder(t *testing.T) {
	params := jsonval.NewObject(jsonval.Field{Key: "a", Value: jsonval.Int64Number(1)})
	req, err := NewRequest().
		Version(Version).
		ID(StringID("abc")).
		Method("compute").
		Params(params).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if req.Version() != "2.0" || req.Method() != "compute" {
		t.Errorf("built request = %q %q", req.Version(), req.Method())
	}
	if req.IsNotification() {
		t.Error("request with an id is not a notification")
	}
	if p, ok := req.Params(); !ok || !jsonval.Equal(p, params) {
		t.Error("params did not carry through")
	}
}

func TestRequestBuilderViolations(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Request, error)
		want  []string
	}{
		{
			"nothing set",
			func() (*Request, error) { return NewRequest().Build() },
			[]string{"version is not set", "method is not set"},
		},
		{
			"scalar params",
			func() (*Request, error) {
				return NewRequest().Version(Version).Method("m").Params(jsonval.String("no")).Build()
			},
			[]string{"params must be an array or object"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if err == nil {
				t.Fatal("expected a validation failure")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if len(ve.Violations) != len(tt.want) {
				t.Fatalf("violations = %v, want %d entries", ve.Violations, len(tt.want))
			}
			for i, w := range tt.want {
				if !strings.Contains(ve.Violations[i], w) {
					t.Errorf("violation %d = %q, want mention of %q", i, ve.Violations[i], w)
				}
			}
		})
	}
}

func TestResponseBuilder(t *testing.T) {
	resp, err := NewResponse().Version(Version).ID(Int64ID(7)).Result(jsonval.String("ok")).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	result, ok := resp.Result()
	if !ok {
		t.Fatal("expected a success response")
	}
	if s, _ := jsonval.AsString(result); s != "ok" {
		t.Errorf("result = %v", result)
	}
	if resp.Err() != nil {
		t.Error("success response must not carry an error")
	}

	fail, err := NewResponse().Version(Version).ID(Int64ID(7)).
		Error(NewError(MethodNotFound, "no such method")).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if fail.Err() == nil || fail.Err().Code != MethodNotFound {
		t.Errorf("error member = %+v", fail.Err())
	}
	if _, ok := fail.Result(); ok {
		t.Error("error response must not report a result")
	}
}

func TestResponseBuilderViolations(t *testing.T) {
	tests := []struct {
		name    string
		builder *ResponseBuilder
		want    string
	}{
		{"neither member", NewResponse().Version(Version), "one of result or error is required"},
		{
			"both members",
			NewResponse().Version(Version).Result(jsonval.Null()).Error(NewError(InternalError, "x")),
			"result and error are mutually exclusive",
		},
		{"no version", NewResponse().Result(jsonval.Null()), "version is not set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if err == nil {
				t.Fatal("expected a validation failure")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			found := false
			for _, v := range ve.Violations {
				if strings.Contains(v, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("violations = %v, want mention of %q", ve.Violations, tt.want)
			}
		})
	}
}

func TestResultOrError(t *testing.T) {
	t.Run("result path", func(t *testing.T) {
		resp, err := NewResponse().Version(Version).ID(Int64ID(1)).
			ResultOrError(func() (jsonval.Value, error) {
				return jsonval.Int64Number(42), nil
			}).Build()
		if err != nil {
			t.Fatal(err)
		}
		result, ok := resp.Result()
		if !ok {
			t.Fatal("expected a success response")
		}
		n, _ := jsonval.AsNumber(result)
		if i, _ := n.Int64(); i != 42 {
			t.Errorf("result = %s", n.Text())
		}
	})

	t.Run("rpc error path", func(t *testing.T) {
		resp, err := NewResponse().Version(Version).ID(Int64ID(1)).
			ResultOrError(func() (jsonval.Value, error) {
				return nil, NewError(InvalidParams, "bad params")
			}).Build()
		if err != nil {
			t.Fatal(err)
		}
		if resp.Err() == nil || resp.Err().Code != InvalidParams {
			t.Errorf("error member = %+v", resp.Err())
		}
	})

	t.Run("unexpected failure propagates", func(t *testing.T) {
		boom := errors.New("backend exploded")
		_, err := NewResponse().Version(Version).ID(Int64ID(1)).
			ResultOrError(func() (jsonval.Value, error) {
				return nil, boom
			}).Build()
		if err == nil {
			t.Fatal("the computation failure must propagate")
		}
		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want the wrapped original", err)
		}
		var ve *ValidationError
		if errors.As(err, &ve) {
			t.Error("an unexpected failure must not be coerced into a validation error")
		}
	})
}
