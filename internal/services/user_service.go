package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"food_ordering/internal/logger"
	"food_ordering/internal/models"
	"food_ordering/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Profile   *ProfileInput
}

type ProfileInput struct {
	OtherName   string
	DateOfBirth string
	PhoneNumber string
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput, role models.UserRole) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateRole(ctx context.Context, actorID, userID uint, role models.UserRole) (*models.User, error)
}

type userService struct {
	db       *gorm.DB
	notifier NotificationService
	log      *logger.Logger
}

func NewUserService(db *gorm.DB, notifier NotificationService, log *logger.Logger) UserService {
	return &userService{db: db, notifier: notifier, log: log}
}

func (s *userService) Register(ctx context.Context, input RegisterInput, role models.UserRole) (*models.User, error) {
	if role != models.RoleCustomer && role != models.RoleOwner {
		return nil, invalid("role", "registration is only open to customers and owners")
	}

	user, err := buildUser(input, role)
	if err != nil {
		return nil, err
	}

	users := repository.NewUserRepository(s.db.WithContext(ctx))
	exists, err := users.EmailExists(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if err := users.Create(user); err != nil {
		// a concurrent registration can win between the check and the insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user_registered", logger.RequestID(ctx), "user account created",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("role", user.Role),
	)
	return user, nil
}

func buildUser(input RegisterInput, role models.UserRole) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	switch {
	case email == "":
		return nil, invalid("email", "this field is required")
	case !strings.Contains(email, "@"):
		return nil, invalid("email", "enter a valid email address")
	case len(input.Password) < 8:
		return nil, invalid("password", "password must be at least 8 characters")
	case strings.TrimSpace(input.FirstName) == "":
		return nil, invalid("first_name", "this field is required")
	case strings.TrimSpace(input.LastName) == "":
		return nil, invalid("last_name", "this field is required")
	}

	user := &models.User{
		Email:     email,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Role:      string(role),
		IsActive:  true,
	}

	if input.Profile != nil {
		profile, err := buildProfile(input.Profile)
		if err != nil {
			return nil, err
		}
		user.Profile = profile
	}
	return user, nil
}

func buildProfile(input *ProfileInput) (*models.UserProfile, error) {
	if strings.TrimSpace(input.OtherName) == "" {
		return nil, invalid("user_profile.other_name", "this field is required")
	}
	dob, err := time.Parse(dateLayout, input.DateOfBirth)
	if err != nil {
		return nil, invalid("user_profile.date_of_birth", "date has wrong format, use YYYY-MM-DD")
	}
	if dob.After(time.Now()) {
		return nil, invalid("user_profile.date_of_birth", "date of birth cannot be in the future")
	}
	phone := strings.TrimSpace(input.PhoneNumber)
	if phone == "" || len(phone) > 10 || strings.IndexFunc(phone, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		return nil, invalid("user_profile.phone_number", "phone number must be up to 10 digits")
	}

	return &models.UserProfile{
		OtherName:   strings.TrimSpace(input.OtherName),
		DateOfBirth: dob,
		PhoneNumber: phone,
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := repository.NewUserRepository(s.db.WithContext(ctx)).GetByID(id)
	if err != nil {
		return nil, lookupError(err, "user")
	}
	return user, nil
}

// UpdateRole lets an admin change another user's role. Promotion to owner
// sends a notification email once the change is committed.
func (s *userService) UpdateRole(ctx context.Context, actorID, userID uint, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, invalid("role", fmt.Sprintf("%q is not a valid choice", role))
	}

	var updated *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)

		actor, err := users.GetByID(actorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnauthorized
			}
			return fmt.Errorf("failed to load acting user: %w", err)
		}
		if !actor.IsAdmin {
			return ErrForbidden
		}

		target, err := users.GetByIDForUpdate(userID)
		if err != nil {
			return lookupError(err, "user")
		}
		if role == models.RoleOwner && target.HasRole(models.RoleOwner) {
			return ErrAlreadyOwner
		}

		if err := users.UpdateRole(target.ID, string(role)); err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}
		updated, err = users.GetByID(target.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user_role_updated", logger.RequestID(ctx), "user role changed",
		slog.Uint64("user_id", uint64(updated.ID)),
		slog.Uint64("admin_id", uint64(actorID)),
		slog.String("role", updated.Role),
	)

	if role == models.RoleOwner && s.notifier != nil {
		if err := s.notifier.NotifyOwnerPromotion(ctx, updated); err != nil {
			s.log.Error("owner_promotion_email_failed", logger.RequestID(ctx), "failed to send promotion email", err,
				slog.Uint64("user_id", uint64(updated.ID)),
			)
		}
	}
	return updated, nil
}
