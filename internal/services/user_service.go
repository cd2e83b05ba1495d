package services

import (
	"context"
	"strings"
	"time"

	"teahouse/internal/apperrors"
	"teahouse/internal/models"
	"teahouse/internal/validation"
)

// UserService handles business logic related to users. It never returns
// password hashes.
type UserService struct {
	col    *collection[models.User]
	hasher PasswordHasher
	now    func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(d Deps, hasher PasswordHasher) *UserService {
	return &UserService{
		col:    newCollection[models.User](d, models.CollectionUsers, "user", "user"),
		hasher: hasher,
		now:    time.Now,
	}
}

func (s *UserService) GetAll(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.col.list(ctx)
	if err != nil {
		return nil, err
	}
	return responses(users), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.UserResponse, error) {
	u, err := s.col.get(ctx, id)
	if err != nil {
		return models.UserResponse{}, err
	}
	return u.Response(), nil
}

// ResolveKey returns the storage key of the user addressed by id, which may be
// the storage key itself or a legacy logical id.
func (s *UserService) ResolveKey(ctx context.Context, id string) (string, error) {
	doc, err := s.col.locate(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.Key, nil
}

// GetByEmail looks a user up by exact email, ignoring case.
func (s *UserService) GetByEmail(ctx context.Context, email string) (models.UserResponse, error) {
	u, err := findUserByEmail(ctx, s.col, email)
	if err != nil {
		return models.UserResponse{}, err
	}
	if u == nil {
		return models.UserResponse{}, apperrors.ErrNotFound.WithMessage("user not found")
	}
	return u.Response(), nil
}

// SearchByName returns the users whose full name contains term.
func (s *UserService) SearchByName(ctx context.Context, term string) ([]models.UserResponse, error) {
	users, err := s.col.search(ctx, "fullName", term)
	if err != nil {
		return nil, err
	}
	return responses(users), nil
}

// Create registers a user. Role is always RoleUser and the account starts enabled.
func (s *UserService) Create(ctx context.Context, in models.UserInput) (models.UserResponse, error) {
	if err := validation.ValidateUser(in).Err(); err != nil {
		return models.UserResponse{}, err
	}
	if err := s.ensureEmailFree(ctx, *in.Email, ""); err != nil {
		return models.UserResponse{}, err
	}

	role := models.RoleUser
	enabled := true
	in.Role = &role
	in.AccountEnabled = &enabled
	fields, err := s.fieldsWithHash(in)
	if err != nil {
		return models.UserResponse{}, err
	}
	fields["createdAt"] = s.now().UTC().Format(time.RFC3339)

	u, err := s.col.create(ctx, fields)
	if err != nil {
		return models.UserResponse{}, err
	}
	return u.Response(), nil
}

// Update applies a partial update, re-hashing the password when one is supplied.
func (s *UserService) Update(ctx context.Context, id string, in models.UserInput) (models.UserResponse, error) {
	if err := validation.ValidateUserUpdate(in).Err(); err != nil {
		return models.UserResponse{}, err
	}
	doc, err := s.col.locate(ctx, id)
	if err != nil {
		return models.UserResponse{}, err
	}
	if in.Email != nil {
		if err := s.ensureEmailFree(ctx, *in.Email, doc.Key); err != nil {
			return models.UserResponse{}, err
		}
	}
	fields, err := s.fieldsWithHash(in)
	if err != nil {
		return models.UserResponse{}, err
	}
	u, err := s.col.update(ctx, doc.Key, fields)
	if err != nil {
		return models.UserResponse{}, err
	}
	return u.Response(), nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.col.remove(ctx, id)
}

func (s *UserService) fieldsWithHash(in models.UserInput) (map[string]interface{}, error) {
	if in.Password != nil {
		hashed, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, apperrors.ErrInternal.Wrap(err)
		}
		in.Password = &hashed
	}
	return fieldsOf(in)
}

// ensureEmailFree fails with ErrDuplicateEmail when another user (any key but
// selfKey) already uses email.
func (s *UserService) ensureEmailFree(ctx context.Context, email, selfKey string) error {
	existing, err := findUserByEmail(ctx, s.col, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfKey {
		return apperrors.ErrDuplicateEmail
	}
	return nil
}

// findUserByEmail scans the users collection. It returns nil, nil when no user
// has the email.
func findUserByEmail(ctx context.Context, col *collection[models.User], email string) (*models.User, error) {
	docs, err := col.store.GetAll(ctx, col.name)
	if err != nil {
		return nil, col.storeErr(ctx, "find by email", err)
	}
	for _, doc := range docs {
		stored, _ := doc.Fields["email"].(string)
		if stored != "" && strings.EqualFold(stored, email) {
			u, err := col.decode(doc)
			if err != nil {
				return nil, err
			}
			return &u, nil
		}
	}
	return nil, nil
}

func responses(users []models.User) []models.UserResponse {
	out := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.Response())
	}
	return out
}
