package accesspolicy

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

const policyQuery = "data.alumni.access.action"

// Default Rego policy implementing the route table: unauthenticated requests
// to protected prefixes go to login, authenticated requests to auth pages go
// home, everything else passes.
const defaultRegoPolicy = `package alumni.access

default action := "allow"

action := "login" if {
	not input.has_session
	some prefix in input.routes.protected
	startswith(input.path, prefix)
}

action := "home" if {
	input.has_session
	some prefix in input.routes.auth
	startswith(input.path, prefix)
}
`

// OPAEvaluator classifies paths with an in-process OPA Rego policy. On
// evaluation failure it falls back to a plain prefix match over the same
// route table, so a broken policy never locks users out.
type OPAEvaluator struct {
	routes   Routes
	compiler *ast.Compiler
}

// NewOPAEvaluator compiles the access policy for the given route table.
func NewOPAEvaluator(routes Routes) (*OPAEvaluator, error) {
	compiler, err := ast.CompileModules(map[string]string{"access.rego": defaultRegoPolicy})
	if err != nil {
		return nil, fmt.Errorf("compile access policy: %w", err)
	}
	return &OPAEvaluator{routes: routes, compiler: compiler}, nil
}

// Evaluate classifies path given session cookie presence.
func (e *OPAEvaluator) Evaluate(ctx context.Context, path string, hasSession bool) (Decision, error) {
	input := map[string]interface{}{
		"path":        path,
		"has_session": hasSession,
		"routes": map[string]interface{}{
			"protected": e.routes.Protected,
			"auth":      e.routes.Auth,
		},
	}

	q := rego.New(
		rego.Query(policyQuery),
		rego.Compiler(e.compiler),
		rego.Input(input),
	)
	rs, err := q.Eval(ctx)
	if err != nil || len(rs) == 0 || len(rs[0].Expressions) == 0 {
		log.Printf("accesspolicy: eval failed (%v), using prefix fallback", err)
		return e.classify(path, hasSession), nil
	}

	action, ok := rs[0].Expressions[0].Value.(string)
	if !ok {
		log.Printf("accesspolicy: unexpected result %T, using prefix fallback", rs[0].Expressions[0].Value)
		return e.classify(path, hasSession), nil
	}

	switch action {
	case "login":
		return DecisionLogin, nil
	case "home":
		return DecisionHome, nil
	default:
		return DecisionAllow, nil
	}
}

// HealthCheck verifies the compiled policy evaluates. Returns nil on success.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	q := rego.New(
		rego.Query(policyQuery),
		rego.Compiler(e.compiler),
		rego.Input(map[string]interface{}{
			"path":        "/",
			"has_session": false,
			"routes": map[string]interface{}{
				"protected": []string{},
				"auth":      []string{},
			},
		}),
	)
	rs, err := q.Eval(ctx)
	if err != nil {
		return fmt.Errorf("eval access policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return fmt.Errorf("access policy query returned no result")
	}
	return nil
}

func (e *OPAEvaluator) classify(path string, hasSession bool) Decision {
	if !hasSession {
		for _, prefix := range e.routes.Protected {
			if strings.HasPrefix(path, prefix) {
				return DecisionLogin
			}
		}
		return DecisionAllow
	}
	for _, prefix := range e.routes.Auth {
		if strings.HasPrefix(path, prefix) {
			return DecisionHome
		}
	}
	return DecisionAllow
}
