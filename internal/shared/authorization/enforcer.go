// Package authorization maps self-selected roles to the capabilities they
// hold over the ticket table. Role is a trusted label, not an identity;
// the enforcer only decides which surfaces a role may touch.
package authorization

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
)

const (
	ObjectTickets = "tickets"
	ObjectNotes   = "notes"

	ActionSubmit   = "submit"
	ActionUpload   = "upload"
	ActionEdit     = "edit"
	ActionAnnotate = "annotate"
)

const aclModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// rolePolicies is the full capability table. There is no database behind
// it; policies are registered at construction time.
var rolePolicies = [][]string{
	{vo.RoleBranchManager.String(), ObjectTickets, ActionSubmit},
	{vo.RoleBranchManager.String(), ObjectTickets, ActionUpload},
	{vo.RoleBranchManager.String(), ObjectNotes, ActionAnnotate},
	{vo.RoleCMStaff.String(), ObjectTickets, ActionEdit},
	{vo.RoleCMStaff.String(), ObjectNotes, ActionAnnotate},
}

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(aclModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if _, err := enforcer.AddPolicies(rolePolicies); err != nil {
		return nil, fmt.Errorf("failed to register role policies: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// Can reports whether the role holds the capability. Enforcement failures
// deny and are logged; a bad policy must never grant access.
func (e *Enforcer) Can(role vo.Role, object, action string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role.String(), object, action)
	if err != nil {
		e.logger.Errorw("capability check failed", "error", err, "role", role.String(), "object", object, "action", action)
		return false
	}
	return allowed
}

func (e *Enforcer) CanSubmitTickets(role vo.Role) bool {
	return e.Can(role, ObjectTickets, ActionSubmit)
}

func (e *Enforcer) CanUploadBatches(role vo.Role) bool {
	return e.Can(role, ObjectTickets, ActionUpload)
}

func (e *Enforcer) CanEditTable(role vo.Role) bool {
	return e.Can(role, ObjectTickets, ActionEdit)
}

func (e *Enforcer) CanAnnotate(role vo.Role) bool {
	return e.Can(role, ObjectNotes, ActionAnnotate)
}
