package service

import (
	"errors"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/ws"

	"github.com/google/uuid"
)

var ErrUserNotPending = errors.New("user is not awaiting approval")

type UserService interface {
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
	GetPendingUsers() ([]model.UserResponse, error)
	Approve(userID uuid.UUID, roleID uint, approverID string) (*model.User, error)
	Reject(userID uuid.UUID, approverID string) error
	DeleteUser(userID uuid.UUID) error
	UpdateUserPrivileges(userID uuid.UUID, privilegeCodes []string, updaterID string) (*model.User, error)
}

type userService struct {
	userRepo      repository.UserRepository
	privilegeRepo repository.PrivilegeRepository
	roleRepo      repository.RoleRepository
	wsHub         *ws.Hub
}

func NewUserService(userRepo repository.UserRepository, privilegeRepo repository.PrivilegeRepository, roleRepo repository.RoleRepository, hub *ws.Hub) UserService {
	return &userService{
		userRepo:      userRepo,
		privilegeRepo: privilegeRepo,
		roleRepo:      roleRepo,
		wsHub:         hub,
	}
}

// Approve activates a PENDING account, assigns the given role and copies its
// privileges onto the user.
func (s *userService) Approve(userID uuid.UUID, roleID uint, approverID string) (*model.User, error) {
	// 1. Find pending user
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.Status != model.UserPending {
		return nil, ErrUserNotPending
	}

	// 2. Validate role exists
	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		return nil, errors.New("role not found")
	}

	// 3. Activate with role-derived privileges
	user.Status = model.UserActive
	user.RoleID = &role.ID
	user.UpdatedBy = approverID
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdatePrivileges(user.ID, role.Privileges); err != nil {
		return nil, err
	}

	// 4. Let connected admins refresh their approval queue
	go s.wsHub.Publish(ws.Event{
		Type:  ws.EventUserApproved,
		Actor: ws.Actor{ID: approverID},
		Count: 1,
	})

	return s.userRepo.FindByID(userID)
}

func (s *userService) Reject(userID uuid.UUID, approverID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if user.Status != model.UserPending {
		return ErrUserNotPending
	}

	user.Status = model.UserRejected
	user.UpdatedBy = approverID
	return s.userRepo.Update(user)
}

func (s *userService) DeleteUser(userID uuid.UUID) error {
	return s.userRepo.Delete(userID)
}

func (s *userService) UpdateUserPrivileges(userID uuid.UUID, privilegeCodes []string, updaterID string) (*model.User, error) {
	// 1. Find user
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 2. Resolve codes to privileges
	privileges, err := s.privilegeRepo.FindByCodes(privilegeCodes)
	if err != nil {
		return nil, errors.New("failed to find privileges")
	}

	// 3. Replace and update audit field
	if err := s.userRepo.UpdatePrivileges(userID, privileges); err != nil {
		return nil, err
	}
	user.UpdatedBy = updaterID
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(userID)
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetPendingUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindByStatus(model.UserPending)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	response := user.ToResponse()
	return &response, nil
}
