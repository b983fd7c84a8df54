package cloudconfig

import (
	"context"

	"github.com/go-logr/logr"
)

// Context is passed to every directive handler of a run.
type Context struct {
	context.Context
	Session *Session
	Log     logr.Logger
}

// NewContext creates a directive context.
func NewContext(ctx context.Context, session *Session, log logr.Logger) *Context {
	if session == nil {
		session = NewSession()
	}
	return &Context{
		Context: ctx,
		Session: session,
		Log:     log,
	}
}

// withLogger returns a copy of c logging through log.
func (c *Context) withLogger(log logr.Logger) *Context {
	cp := *c
	cp.Log = log
	return &cp
}
