package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-backend/dao"
	"marketplace-backend/model"
	"marketplace-backend/pkg/idgen"
)

type UserUsecase struct {
	repo   UserStore
	hasher PasswordHasher
	now    func() time.Time
}

func NewUserUsecase(repo UserStore, hasher PasswordHasher) *UserUsecase {
	return &UserUsecase{repo: repo, hasher: hasher, now: time.Now}
}

// RegisterUser creates a seller account. Admins are promoted out of band.
func (u *UserUsecase) RegisterUser(ctx context.Context, name, email, password string) (*model.User, error) {
	existing, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register user: hash password: %w", err)
	}
	user := &model.User{
		ID:           idgen.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleSeller,
		CreatedAt:    u.now().UTC(),
	}
	if err := u.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, dao.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

// Login checks the password. An unknown email and a wrong password both
// return ErrInvalidCredentials.
func (u *UserUsecase) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
