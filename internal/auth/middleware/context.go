package auth

import "context"

type ctxKey string

const ctxKeySub ctxKey = "sub"

func WithSubject(ctx context.Context, doctorID int64) context.Context {
	return context.WithValue(ctx, ctxKeySub, doctorID)
}

func SubjectFromContext(ctx context.Context) int64 {
	if v := ctx.Value(ctxKeySub); v != nil {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
