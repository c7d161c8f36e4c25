package auth

import "context"

type subjectKey struct{}

// WithSubject stores the authenticated user id (the JWT "sub" claim, a
// student/educator/admin id from the users table) on the request context.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey{}, sub)
}

// SubjectFromContext returns the authenticated user id, or "" when the
// request never passed the JWT middleware. Per-student routes compare it
// against the {studentID} path parameter to enforce ownership.
func SubjectFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(subjectKey{}).(string); ok {
		return s
	}
	return ""
}
