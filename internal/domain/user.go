package domain

import (
	"fmt"
	"strings"
)

type RoleName string

const (
	RoleManager  RoleName = "MANAGER"
	RoleCustomer RoleName = "CUSTOMER"
)

func ParseRoleName(s string) (RoleName, error) {
	switch RoleName(strings.ToUpper(s)) {
	case RoleManager:
		return RoleManager, nil
	case RoleCustomer:
		return RoleCustomer, nil
	}
	return "", fmt.Errorf("%w: unknown role: %s", ErrInvalidArgument, s)
}

type Role struct {
	ID   int64
	Name RoleName
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Roles        []Role
}

func (u User) RoleNames() []RoleName {
	names := make([]RoleName, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

func (u User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
