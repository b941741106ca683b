package auditlog

import (
	"github.com/samber/lo"
)

// Canonical is implemented by values with their own audit representation,
// e.g. a user that should be logged without credentials.
type Canonical interface {
	AuditValue() any
}

// Param is one named argument of an audited call.
type Param struct {
	Name  string
	Value any
}

// Params is an ordered snapshot of the arguments of an audited call.
type Params []Param

// Snapshot serializes the parameters whose names are in allowed. A nil allowed keeps all of them.
func (p Params) Snapshot(allowed []string) map[string]any {
	out := make(map[string]any, len(p))
	for _, param := range p {
		if allowed != nil && !lo.Contains(allowed, param.Name) {
			continue
		}
		out[param.Name] = canonicalize(param.Value)
	}
	return out
}

func canonicalize(v any) any {
	if c, ok := v.(Canonical); ok {
		return c.AuditValue()
	}
	return v
}
