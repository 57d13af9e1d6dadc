// Package seed creates default reference data after migrations
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/qlin/dormtrade/internal/app/models"
	appRepos "github.com/qlin/dormtrade/internal/app/repositories"
	"github.com/qlin/dormtrade/internal/config"
	"github.com/qlin/dormtrade/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// CreateDefaultData seeds the dormitory room catalog and, when configured,
// a first administrator account. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var finalErr error

	lgr.Info().Msg("Checking/Creating default data (rooms, tags)...")
	if err := seedRooms(ctx, dbPool); err != nil {
		lgr.Error().Err(err).Msg("Error seeding rooms")
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedTags(ctx, dbPool); err != nil {
		lgr.Error().Err(err).Msg("Error seeding tags")
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedAdmin(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error seeding default administrator")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

// seedRooms inserts the static room catalog. Two buildings, two floors
// each, four rooms per floor is enough for a fresh development database.
func seedRooms(ctx context.Context, dbPool *pgxpool.Pool) error {
	for _, building := range []string{"B1", "B2"} {
		for floor := 1; floor <= 2; floor++ {
			for room := 1; room <= 4; room++ {
				roomNo := fmt.Sprintf("%d%02d", floor, room)
				_, err := dbPool.Exec(ctx, `
					INSERT INTO rooms (building, floor, room_no)
					VALUES ($1, $2, $3)
					ON CONFLICT ON CONSTRAINT rooms_location_key DO NOTHING
				`, building, floor, roomNo)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// seedTags inserts a starter set of category tags so the catalog is usable
// before the first posting creates its own
func seedTags(ctx context.Context, dbPool *pgxpool.Pool) error {
	names := []string{
		"textbooks", "electronics", "appliances", "clothing",
		"sports", "stationery", "furniture", "snacks",
	}

	for _, name := range names {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO tags (name, ref_count)
			VALUES ($1, 0)
			ON CONFLICT (name) DO NOTHING
		`, name)
		if err != nil {
			return err
		}
	}
	return nil
}

// seedAdmin creates a bootstrap administrator from SEED_ADMIN_STUDENT_ID and
// SEED_ADMIN_PASSWORD. Skipped silently when the variables are unset.
func seedAdmin(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	studentID := config.GetEnv("SEED_ADMIN_STUDENT_ID", "")
	password := config.GetEnv("SEED_ADMIN_PASSWORD", "")
	if studentID == "" || password == "" {
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.StudentIDExists(ctx, studentID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		StudentID: studentID,
		Username:  "admin",
		Email:     config.GetEnv("SEED_ADMIN_EMAIL", "admin@campus.local"),
		Password:  hash,
		RoleLevel: appModels.RoleLevelAdmin,
		Status:    appModels.UserStatusActive,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	lgr.Info().Str("studentId", studentID).Msg("Default administrator created")
	return nil
}
