package auth

import "context"

type userKey struct{}
type staffKey struct{}

// Context identifies the authenticated API user (couple, vendor, or admin).
type Context struct {
	UserID int64
	Role   string
}

// StaffContext identifies a validated staff session and the wedding it is
// scoped to. Staff are anonymous devices; the session is the actor.
type StaffContext struct {
	SessionID int64
	WeddingID int64
}

func WithUser(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, userKey{}, ac)
}

func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(userKey{}).(Context)
	return ac, ok
}

func WithStaff(ctx context.Context, sc StaffContext) context.Context {
	return context.WithValue(ctx, staffKey{}, sc)
}

func StaffFromContext(ctx context.Context) (StaffContext, bool) {
	sc, ok := ctx.Value(staffKey{}).(StaffContext)
	return sc, ok
}
