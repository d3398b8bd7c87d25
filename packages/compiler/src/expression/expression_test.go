package expression_test

import (
	"testing"

	"vgc-go/packages/compiler/src/expression"
	"vgc-go/packages/compiler/src/spec"
)

func TestRender(t *testing.T) {
	t.Run("should render literals as JSON", func(t *testing.T) {
		cases := []struct {
			value interface{}
			want  string
		}{
			{"cars_store", `"cars_store"`},
			{42, "42"},
			{0.125, "0.125"},
			{true, "true"},
			{nil, "null"},
		}
		for _, c := range cases {
			got := expression.NewLiteral(c.value).Render()
			if got != c.want {
				t.Errorf("Expected %s, got %s", c.want, got)
			}
		}
	})

	t.Run("should render field access with a quoted member", func(t *testing.T) {
		got := expression.NewFieldAccess("brush", "Horsepower").Render()
		want := `brush["Horsepower"]`
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	})

	t.Run("should render calls with comma-joined arguments", func(t *testing.T) {
		got := expression.NewCall("vlSelectionTest",
			expression.NewLiteral("pts_store"),
			expression.NewRaw("datum")).Render()
		want := `vlSelectionTest("pts_store", datum)`
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	})

	t.Run("should parenthesize negation", func(t *testing.T) {
		got := expression.NewNot(expression.NewRaw("a || b")).Render()
		if got != "!(a || b)" {
			t.Errorf("Expected !(a || b), got %s", got)
		}
	})

	t.Run("should join junction operands with parenthesized members", func(t *testing.T) {
		got := expression.NewAnd(
			expression.NewRaw("a"),
			expression.NewOr(expression.NewRaw("b"), expression.NewRaw("c"))).Render()
		want := "(a) && ((b) || (c))"
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	})

	t.Run("should not parenthesize a single-operand junction", func(t *testing.T) {
		got := expression.NewOr(expression.NewRaw("a")).Render()
		if got != "a" {
			t.Errorf("Expected a, got %s", got)
		}
	})

	t.Run("should render arrays element-wise", func(t *testing.T) {
		got := expression.NewArray(
			expression.NewLiteral(1),
			expression.NewLiteral(2)).Render()
		if got != "[1, 2]" {
			t.Errorf("Expected [1, 2], got %s", got)
		}
	})
}

func TestAssembleInit(t *testing.T) {
	t.Run("should serialize scalars as JSON", func(t *testing.T) {
		if got := expression.AssembleInit(5.0, nil); got != "5" {
			t.Errorf("Expected 5, got %s", got)
		}
		if got := expression.AssembleInit("A", nil); got != `"A"` {
			t.Errorf(`Expected "A", got %s`, got)
		}
	})

	t.Run("should render date-time objects through the constructor", func(t *testing.T) {
		got := expression.AssembleInit(map[string]interface{}{
			"year":  2005.0,
			"month": 5.0,
			"date":  13.0,
		}, nil)
		want := "datetime(2005, 4, 13, 0, 0, 0, 0)"
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	})

	t.Run("should use the utc constructor for utc values", func(t *testing.T) {
		year := 2005
		got := expression.AssembleInit(&spec.DateTime{Year: &year, UTC: true}, nil)
		want := "utc(2005, 0, 1, 0, 0, 0, 0)"
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	})

	t.Run("should derive the month from a quarter", func(t *testing.T) {
		quarter := 3
		got := expression.AssembleInit(spec.DateTime{Quarter: &quarter}, nil)
		want := "datetime(0, 6, 1, 0, 0, 0, 0)"
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	})

	t.Run("should render arrays element-wise without wrapping the brackets", func(t *testing.T) {
		wrap := func(expr string) string { return "time(" + expr + ")" }
		got := expression.AssembleInit([]interface{}{
			map[string]interface{}{"year": 2000.0},
			map[string]interface{}{"year": 2001.0},
		}, wrap)
		want := "[time(datetime(2000, 0, 1, 0, 0, 0, 0)), time(datetime(2001, 0, 1, 0, 0, 0, 0))]"
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	})

	t.Run("should mix date-time and scalar elements in one array", func(t *testing.T) {
		got := expression.AssembleInit([]interface{}{
			map[string]interface{}{"year": 2005.0, "month": 5.0, "date": 13.0},
			5.0,
		}, nil)
		want := "[datetime(2005, 4, 13, 0, 0, 0, 0), 5]"
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	})

	t.Run("should recurse into nested arrays", func(t *testing.T) {
		got := expression.AssembleInit([]interface{}{
			[]interface{}{55.0, 160.0},
			[]interface{}{13.0, 37.0},
		}, nil)
		want := "[[55, 160], [13, 37]]"
		if got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	})
}

func TestStripTrailingAnd(t *testing.T) {
	t.Run("should strip exactly one trailing operator", func(t *testing.T) {
		got := expression.StripTrailingAnd("a && b && ")
		if got != "a && b" {
			t.Errorf("Expected a && b, got %s", got)
		}
	})

	t.Run("should leave other strings untouched", func(t *testing.T) {
		for _, s := range []string{"a && b", "", "a &&", " && x"} {
			if got := expression.StripTrailingAnd(s); got != s {
				t.Errorf("Expected %q, got %q", s, got)
			}
		}
	})
}
