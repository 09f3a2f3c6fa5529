package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// goalService handles savings goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a savings goal. A goal created at or above its target
// starts out completed.
func (s *goalService) CreateGoal(userID string, in GoalInput) (*models.Goal, error) {
	if in.TargetAmount <= 0 {
		return nil, invalidField("target_amount", "gt", "target_amount must be greater than zero")
	}
	if in.CurrentAmount < 0 {
		return nil, invalidField("current_amount", "gte", "current_amount must not be negative")
	}
	if in.Deadline.IsZero() {
		return nil, invalidField("deadline", "required", "deadline is required")
	}

	goal := &models.Goal{
		Base:          models.Base{UserID: userID},
		Name:          in.Name,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Deadline:      in.Deadline,
	}
	RecomputeCompletion(goal)

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetGoalByID returns a goal by ID if it belongs to the user.
func (s *goalService) GetGoalByID(userID string, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// ListGoals returns a page of the user's goals in creation order.
func (s *goalService) ListGoals(userID string, page pagination.PageRequest) ([]models.Goal, error) {
	goals := []models.Goal{}
	err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Scopes(pagination.Paginate(page)).
		Find(&goals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// UpdateGoal applies the fields present in p and then re-derives completion.
func (s *goalService) UpdateGoal(userID string, goalID uint, p GoalPatch) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if !p.Merge(goal) {
		return goal, nil
	}
	if goal.TargetAmount <= 0 {
		return nil, invalidField("target_amount", "gt", "target_amount must be greater than zero")
	}
	if goal.CurrentAmount < 0 {
		return nil, invalidField("current_amount", "gte", "current_amount must not be negative")
	}
	if goal.Deadline.IsZero() {
		return nil, invalidField("deadline", "required", "deadline is required")
	}
	RecomputeCompletion(goal)

	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// DeleteGoal removes a goal.
func (s *goalService) DeleteGoal(userID string, goalID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// RecomputeCompletion marks the goal completed once the current amount
// reaches the target. It never clears the flag.
func RecomputeCompletion(goal *models.Goal) {
	if goal.CurrentAmount >= goal.TargetAmount {
		goal.Completed = true
	}
}

// Merge copies the present fields into g and reports whether any were set.
func (p GoalPatch) Merge(g *models.Goal) bool {
	changed := p.Name.Apply(&g.Name)
	changed = p.TargetAmount.Apply(&g.TargetAmount) || changed
	changed = p.CurrentAmount.Apply(&g.CurrentAmount) || changed
	changed = p.Deadline.Apply(&g.Deadline) || changed
	return changed
}
