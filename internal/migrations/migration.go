package migrations

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"food_ordering/internal/config"
	"food_ordering/internal/logger"
	"food_ordering/internal/models"
	"food_ordering/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date and seeds the default admin.
// With reset set every table is dropped first.
func RunMigrations(db *gorm.DB, cfg *config.Config, reset bool, log *logger.Logger) error {
	if reset {
		log.Warn("migrate", "", "dropping existing tables")
		if err := db.Migrator().DropTable(models.All()...); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}

	log.Info("migrate", "", "running database migrations")
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := createDefaultAdmin(db, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		return err
	}

	log.Info("migrate", "", "database migrations completed")
	return nil
}

func createDefaultAdmin(db *gorm.DB, email, password string, log *logger.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		log.Debug("seed_admin", "", "ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	users := repository.NewUserRepository(db)
	if _, err := users.GetByEmail(email); err == nil {
		log.Info("seed_admin", "", "admin user already exists", slog.String("email", email))
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Admin",
		LastName:  "User",
		Role:      string(models.RoleNone),
		IsAdmin:   true,
		IsActive:  true,
	}
	if err := users.Create(admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info("seed_admin", "", "admin user created", slog.String("email", email))
	return nil
}
