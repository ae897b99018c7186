package bug

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"bugtrail/internal/domain"
	"bugtrail/internal/repository"
	"bugtrail/internal/service/dispatch"
)

var (
	ErrTitleRequired = errors.New("bug title is required")
	ErrInvalidStatus = errors.New("invalid bug status")
)

// Service is the thin slice of the tracker the notification pipeline hangs
// off: every mutation commits first, then fires its event. Delivery failures
// never surface here, so the mutation succeeds even when every channel is down.
type Service interface {
	Create(ctx context.Context, input domain.CreateBugInput, actor *domain.User) (*domain.Bug, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bug, error)
	Assign(ctx context.Context, id uuid.UUID, input domain.AssignBugInput, actor *domain.User) (*domain.Bug, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input domain.UpdateBugStatusInput, actor *domain.User) (*domain.Bug, error)
	Resolve(ctx context.Context, id uuid.UUID, input domain.ResolveBugInput, actor *domain.User) (*domain.Bug, error)
	Close(ctx context.Context, id uuid.UUID, input domain.CloseBugInput, actor *domain.User) (*domain.Bug, error)
}

type service struct {
	bugRepo    repository.BugRepository
	dispatcher dispatch.Service
}

func NewService(bugRepo repository.BugRepository, dispatcher dispatch.Service) Service {
	return &service{
		bugRepo:    bugRepo,
		dispatcher: dispatcher,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateBugInput, actor *domain.User) (*domain.Bug, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	bug := &domain.Bug{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.StatusOpen,
		CreatorID:   actor.ID,
		ManagerID:   input.ManagerID,
	}

	if err := s.bugRepo.Create(ctx, bug); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, domain.BugCreated{
		Bug:       *bug,
		ManagerID: bug.ManagerID,
		ActorName: actor.DisplayName,
	})

	return bug, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bug, error) {
	bug, err := s.bugRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bug == nil {
		return nil, domain.ErrNotFound
	}
	return bug, nil
}

func (s *service) Assign(ctx context.Context, id uuid.UUID, input domain.AssignBugInput, actor *domain.User) (*domain.Bug, error) {
	bug, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bug.AssigneeID = &input.AssigneeID
	if bug.Status == domain.StatusOpen {
		bug.Status = domain.StatusAssigned
	}

	if err := s.bugRepo.Update(ctx, bug); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, domain.BugAssigned{
		Bug:        *bug,
		AssigneeID: input.AssigneeID,
		ActorName:  actor.DisplayName,
	})

	return bug, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input domain.UpdateBugStatusInput, actor *domain.User) (*domain.Bug, error) {
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	bug, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := bug.Status
	if oldStatus == input.Status {
		return bug, nil
	}
	bug.Status = input.Status

	if err := s.bugRepo.Update(ctx, bug); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, domain.BugStatusChanged{
		Bug:       *bug,
		OldStatus: oldStatus,
		NewStatus: bug.Status,
		ActorName: actor.DisplayName,
	})

	return bug, nil
}

func (s *service) Resolve(ctx context.Context, id uuid.UUID, input domain.ResolveBugInput, actor *domain.User) (*domain.Bug, error) {
	bug, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bug.Status = domain.StatusResolved
	bug.Resolution = &input.Resolution

	if err := s.bugRepo.Update(ctx, bug); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, domain.BugResolved{
		Bug:        *bug,
		Resolution: input.Resolution,
		ActorName:  actor.DisplayName,
	})

	return bug, nil
}

func (s *service) Close(ctx context.Context, id uuid.UUID, input domain.CloseBugInput, actor *domain.User) (*domain.Bug, error) {
	bug, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bug.Status = domain.StatusClosed

	if err := s.bugRepo.Update(ctx, bug); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, domain.BugClosed{
		Bug:       *bug,
		Reason:    input.Reason,
		ActorName: actor.DisplayName,
	})

	return bug, nil
}
