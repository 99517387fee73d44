package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
)

// Matcher decides whether a route description connects two places.
type Matcher interface {
	Match(description, pointA, pointB string) bool
}

// SubstringMatcher matches when the description contains both places, case-insensitively and in any order.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(description, pointA, pointB string) bool {
	description = strings.ToLower(description)
	pointA = strings.ToLower(strings.TrimSpace(pointA))
	pointB = strings.ToLower(strings.TrimSpace(pointB))

	if pointA == "" || pointB == "" {
		return false
	}

	return strings.Contains(description, pointA) && strings.Contains(description, pointB)
}

// CELMatcher evaluates a boolean CEL expression over the lower-cased
// variables description, a and b.
type CELMatcher struct {
	expr    string
	program cel.Program
}

func NewCELMatcher(expr string) (*CELMatcher, error) {
	env, err := cel.NewEnv(
		cel.Variable("description", cel.StringType),
		cel.Variable("a", cel.StringType),
		cel.Variable("b", cel.StringType),
	)

	if err != nil {
		return nil, err
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("invalid matcher expression %q: %w", expr, iss.Err())
	}

	if !ast.OutputType().IsExactType(types.BoolType) {
		return nil, errors.New("matcher expression must evaluate to bool")
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}

	return &CELMatcher{expr: expr, program: program}, nil
}

func (m *CELMatcher) Match(description, pointA, pointB string) bool {
	res, _, err := m.program.Eval(map[string]any{
		"description": strings.ToLower(description),
		"a":           strings.ToLower(strings.TrimSpace(pointA)),
		"b":           strings.ToLower(strings.TrimSpace(pointB)),
	})

	if err != nil {
		slog.Warn("route matcher expression failed", slog.String("expr", m.expr), slog.String("err", err.Error()))
		return false
	}

	v, ok := res.ConvertToType(types.BoolType).Value().(bool)
	return ok && v
}
