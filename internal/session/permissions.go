package session

import "strings"

// HasPermission reports whether the session's permission set grants the
// given "resource:action" capability. Supported grant forms are the
// exact capability, "resource:*", "*:action", and the global "*:*".
//
// This check gates what the UI renders; it is not a security boundary.
// The server enforces the same rule on every request.
func (s *Session) HasPermission(perm string) bool {
	if s == nil {
		return false
	}

	resource, action, ok := strings.Cut(perm, ":")
	if !ok {
		return false
	}

	for _, granted := range s.Claims.Permissions {
		gr, ga, ok := strings.Cut(granted, ":")
		if !ok {
			continue
		}
		if (gr == resource || gr == "*") && (ga == action || ga == "*") {
			return true
		}
	}

	return false
}

// CanMutate reports whether any of create/update/delete is granted for
// the resource, used to decide whether mutating affordances render at all.
func (s *Session) CanMutate(resource string) bool {
	return s.HasPermission(resource+":create") ||
		s.HasPermission(resource+":update") ||
		s.HasPermission(resource+":delete")
}
