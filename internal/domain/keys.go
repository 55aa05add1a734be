package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserRole  CtxKey = "Role"
	KeyIdentity  CtxKey = "Identity"
	KeyUser      CtxKey = "User"
	KeySession   CtxKey = "SessionToken"
	KeyRequestID CtxKey = "RequestID"
)
