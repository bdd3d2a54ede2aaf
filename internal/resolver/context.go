package resolver

import "context"

type clientIPKey struct{}

// WithClientIP returns a copy of ctx carrying the caller's network address.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the caller's network address stored by WithClientIP, or ""
// when there is none.
func ClientIP(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
