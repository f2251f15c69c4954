package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, user *User) error
	GetOrCreateRole(ctx context.Context, name string) (*Role, error)
	DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

func (pg *PostgresRepo) CreateUser(ctx context.Context, user *User) error {
	if err := pg.conn(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

func (pg *PostgresRepo) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := pg.conn(ctx).Preload("Role").First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (pg *PostgresRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := pg.conn(ctx).Preload("Role").Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (pg *PostgresRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := pg.conn(ctx).Model(&User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (pg *PostgresRepo) UpdateUser(ctx context.Context, user *User) error {
	if err := pg.conn(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", translate(err))
	}
	return nil
}

func (pg *PostgresRepo) GetOrCreateRole(ctx context.Context, name string) (*Role, error) {
	role := Role{Name: name}
	err := pg.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&role).Error
	if err != nil && !errors.Is(translate(err), ErrDuplicateKey) {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	if err := pg.conn(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

// DeleteUnverifiedBefore removes unverified accounts created before cutoff
// together with their refresh tokens.
func (pg *PostgresRepo) DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := pg.conn(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := purgeUnverified(tx, cutoff)
		deleted = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete unverified users: %w", err)
	}
	return deleted, nil
}

func purgeUnverified(tx *gorm.DB, cutoff time.Time) (int64, error) {
	stale := tx.Model(&User{}).Select("id").Where("is_verified = ? AND created_at < ?", false, cutoff)
	if err := tx.Where("user_id IN (?)", stale).Delete(&RefreshToken{}).Error; err != nil {
		return 0, err
	}
	res := tx.Where("is_verified = ? AND created_at < ?", false, cutoff).Delete(&User{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
