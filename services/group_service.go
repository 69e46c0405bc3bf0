package services

import (
	"errors"

	"github.com/reconized/LittleLemon/entity"
	"github.com/reconized/LittleLemon/pkg/apperr"
	"github.com/reconized/LittleLemon/repository"

	"gorm.io/gorm"
)

type GroupService struct {
	DB        *gorm.DB
	GroupRepo *repository.GroupRepository
	UserRepo  *repository.UserRepository
}

func NewGroupService(db *gorm.DB, gr *repository.GroupRepository, ur *repository.UserRepository) *GroupService {
	return &GroupService{DB: db, GroupRepo: gr, UserRepo: ur}
}

type MemberOut struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Members lists a group's users. A group that has never been used does not
// exist yet and reads as not found, matching the write paths below.
func (s *GroupService) Members(groupName string) ([]MemberOut, error) {
	group, err := s.GroupRepo.FindByName(groupName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrapf(apperr.ErrNotFound, "group %s does not exist", groupName)
		}
		return nil, err
	}
	users, err := s.GroupRepo.Members(group.ID)
	if err != nil {
		return nil, err
	}
	out := make([]MemberOut, 0, len(users))
	for _, u := range users {
		out = append(out, MemberOut{ID: u.ID, Username: u.Username, Email: u.Email})
	}
	return out, nil
}

// AddMember creates the group on first use, then adds the user unless already
// a member. The existence check and the insert share one transaction so
// concurrent adds cannot both pass the check.
func (s *GroupService) AddMember(groupName, username string) error {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "user does not exist")
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		group, err := s.GroupRepo.GetOrCreate(tx, groupName)
		if err != nil {
			return err
		}
		member, err := s.GroupRepo.IsMember(tx, group.ID, user.ID)
		if err != nil {
			return err
		}
		if member {
			return apperr.Wrapf(apperr.ErrConflict, "user %s is already in the %s group", username, groupName)
		}
		return s.GroupRepo.AddMember(tx, group, user)
	})
}

// RemoveMember drops the user from the group. Only the manager path verifies
// membership first; the delivery-crew path removes blindly and succeeds even
// for non-members. The asymmetry matches observed behavior and is pinned by
// tests; see DESIGN.md.
func (s *GroupService) RemoveMember(groupName string, userID uint) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.Wrap(apperr.ErrNotFound, "user not found")
		}
		return "", err
	}
	group, err := s.GroupRepo.FindByName(groupName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.Wrapf(apperr.ErrNotFound, "group %s does not exist", groupName)
		}
		return "", err
	}

	if groupName == entity.GroupManager {
		member, err := s.GroupRepo.IsMember(s.DB, group.ID, user.ID)
		if err != nil {
			return "", err
		}
		if !member {
			return "", apperr.Wrapf(apperr.ErrNotFound, "user %s is not found in the group", user.Username)
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.GroupRepo.RemoveMember(tx, group, user)
	})
	if err != nil {
		return "", err
	}
	return user.Username, nil
}
