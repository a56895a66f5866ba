package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	"go.uber.org/fx"

	domainModel "github.com/polkiloo/storefront/internal/domain/model"
)

const rolePrefix = "role:"

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy grants a subject an action on an object pattern.
type Policy struct {
	Subject string
	Object  string
	Action  string
}

// DefaultPolicies lets admins read every admin route.
func DefaultPolicies() []Policy {
	return []Policy{
		{Subject: SubjectForRole(domainModel.RoleAdmin), Object: "/api/admin/orders", Action: "GET"},
		{Subject: SubjectForRole(domainModel.RoleAdmin), Object: "/api/admin/orders/:id", Action: "GET"},
	}
}

// Module provides the enforcer seeded with DefaultPolicies.
var Module = fx.Provide(func() (*Service, error) { return NewService(DefaultPolicies()...) })

// Service answers role based authorization questions.
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService builds an in-memory enforcer holding policies.
func NewService(policies ...Policy) (*Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p.Subject, NormalizeObject(p.Object), strings.ToUpper(p.Action)); err != nil {
			return nil, fmt.Errorf("add policy %s %s: %w", p.Subject, p.Object, err)
		}
	}
	return &Service{enforcer: enforcer}, nil
}

// Allowed reports whether role may perform method on path.
func (s *Service) Allowed(role domainModel.Role, path, method string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(SubjectForRole(role), NormalizeObject(path), strings.ToUpper(strings.TrimSpace(method)))
}

// SubjectForRole maps a customer role to its policy subject.
func SubjectForRole(role domainModel.Role) string {
	return rolePrefix + strings.ToLower(strings.TrimSpace(string(role)))
}

// NormalizeObject trims whitespace and a trailing slash.
func NormalizeObject(object string) string {
	object = strings.TrimSpace(object)
	if len(object) > 1 {
		object = strings.TrimRight(object, "/")
	}
	if object == "" {
		return "/"
	}
	return object
}
