// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Security Context

// SecurityContext is the verified identity of one in-flight request.
//
// It is created by the authentication gate from a successfully verified
// token and is never modified afterwards. A nil *SecurityContext means the
// request is anonymous.
type SecurityContext struct {
	subject string
}

// NewSecurityContext wraps a verified subject.
func NewSecurityContext(subject string) *SecurityContext {
	return &SecurityContext{subject: subject}
}

// Subject returns the authenticated username, or "" for an anonymous request.
func (c *SecurityContext) Subject() string {
	if c == nil {
		return ""
	}
	return c.subject
}

// Authenticated reports whether the context carries a verified subject.
func (c *SecurityContext) Authenticated() bool {
	return c != nil && c.subject != ""
}
