package service

import (
	"context"
	"fmt"

	"career_compass_v2/internal/domain/repository"
)

// ReflectionService reads and writes the single free-text notes field each
// user owns. The field is keyed by the authenticated user's id, so identity
// itself is the ownership check.
type ReflectionService struct {
	userRepo repository.UserRepository
}

func NewReflectionService(userRepo repository.UserRepository) *ReflectionService {
	return &ReflectionService{userRepo: userRepo}
}

func (s *ReflectionService) Read(ctx context.Context, userID int64) (string, error) {
	notes, err := s.userRepo.GetReflectionNotes(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to read reflection notes: %w", err)
	}
	return notes, nil
}

// Write replaces the notes unconditionally; there is no versioning.
func (s *ReflectionService) Write(ctx context.Context, userID int64, notes string) error {
	if err := s.userRepo.UpdateReflectionNotes(ctx, userID, notes); err != nil {
		return fmt.Errorf("failed to write reflection notes: %w", err)
	}
	return nil
}
