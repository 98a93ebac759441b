package service

import (
	"context"
	"fmt"

	"career_compass_v2/internal/common"
	"career_compass_v2/internal/domain/model"
	"career_compass_v2/internal/domain/repository"
)

// anonymousHistoryLimit caps how many ownerless results an unauthenticated
// caller can see. Authenticated history is unbounded; the asymmetry is a
// deliberate privacy/volume control.
const anonymousHistoryLimit = 5

type QuizService struct {
	quizRepo repository.QuizResultRepository
}

func NewQuizService(quizRepo repository.QuizResultRepository) *QuizService {
	return &QuizService{quizRepo: quizRepo}
}

type SaveResultRequest struct {
	ResultData string `json:"result_data"`
}

// Save persists one quiz outcome. ownerID is nil for anonymous submissions;
// the owner never changes after creation.
func (s *QuizService) Save(ctx context.Context, ownerID *int64, req SaveResultRequest) (*model.QuizResult, error) {
	if req.ResultData == "" {
		return nil, fmt.Errorf("result_data is required: %w", common.ErrBadRequest)
	}
	if len(req.ResultData) > model.MaxResultDataLen {
		return nil, fmt.Errorf("result_data exceeds %d bytes: %w", model.MaxResultDataLen, common.ErrValidation)
	}

	result := &model.QuizResult{
		OwnerID:    ownerID,
		ResultData: req.ResultData,
	}
	if err := s.quizRepo.Insert(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}
	return result, nil
}

// History returns results newest first: all of the owner's results when an
// owner is given, otherwise at most anonymousHistoryLimit ownerless ones.
func (s *QuizService) History(ctx context.Context, ownerID *int64) ([]model.QuizResult, error) {
	if ownerID != nil {
		results, err := s.quizRepo.ListByOwner(ctx, *ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to list quiz results: %w", err)
		}
		return results, nil
	}
	results, err := s.quizRepo.ListAnonymous(ctx, anonymousHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list anonymous quiz results: %w", err)
	}
	return results, nil
}

// Delete removes one of the requester's own results. A missing result and a
// result owned by someone else (including anonymous results) both come back
// as the same ErrNotFound.
func (s *QuizService) Delete(ctx context.Context, resultID, requesterID int64) error {
	if err := s.quizRepo.DeleteOwned(ctx, resultID, requesterID); err != nil {
		return fmt.Errorf("failed to delete quiz result: %w", err)
	}
	return nil
}
