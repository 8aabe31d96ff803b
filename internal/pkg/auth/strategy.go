package auth

import "time"

// Role distinguishes customer sessions from the seller console session.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
)

type Strategy interface {
	IssueToken(subject string, role Role) (string, error)
	ParseToken(token string) (string, Role, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
