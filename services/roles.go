package services

import (
	"github.com/reconized/LittleLemon/entity"
	"github.com/reconized/LittleLemon/repository"
)

// Role is resolved exactly once per request and passed into service methods.
// Membership in both groups is possible at the data level; manager wins.
type Role int

const (
	RoleCustomer Role = iota
	RoleDeliveryCrew
	RoleManager
)

func (r Role) String() string {
	switch r {
	case RoleManager:
		return "manager"
	case RoleDeliveryCrew:
		return "delivery-crew"
	default:
		return "customer"
	}
}

type RoleResolver struct {
	Groups *repository.GroupRepository
}

func NewRoleResolver(gr *repository.GroupRepository) *RoleResolver {
	return &RoleResolver{Groups: gr}
}

func (rr *RoleResolver) Resolve(userID uint) (Role, error) {
	names, err := rr.Groups.GroupNamesForUser(userID)
	if err != nil {
		return RoleCustomer, err
	}
	role := RoleCustomer
	for _, n := range names {
		switch n {
		case entity.GroupManager:
			return RoleManager, nil
		case entity.GroupDeliveryCrew:
			role = RoleDeliveryCrew
		}
	}
	return role, nil
}
