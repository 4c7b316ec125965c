package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	DefaultNotificationsLimit = 50
	MaxNotificationsLimit     = 200
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery reads the inbox of a user. A zero limit means DefaultNotificationsLimit.
type ListNotificationsQuery struct {
	userID kernel.UUID
	limit  int

	guard guard.ConstructorGuard
}

func NewListNotificationsQuery(userID kernel.UUID, limit int) (ListNotificationsQuery, error) {
	var limitErr error
	switch {
	case limit == 0:
		limit = DefaultNotificationsLimit
	case limit < 0 || limit > MaxNotificationsLimit:
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxNotificationsLimit)
	}

	if err := errors.Join(requireID("user id", userID), limitErr); err != nil {
		return ListNotificationsQuery{}, err
	}
	return ListNotificationsQuery{userID: userID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) UserID() kernel.UUID {
	return q.userID
}

func (q ListNotificationsQuery) Limit() int {
	return q.limit
}

type ListNotificationsQueryHandler struct {
	inbox ports.NotificationRepository
}

func NewListNotificationsQueryHandler(inbox ports.NotificationRepository) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{inbox: inbox}
}

func (h ListNotificationsQueryHandler) Handle(ctx context.Context, query ListNotificationsQuery) ([]ports.InboxEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.inbox.ListByUser(ctx, query.UserID(), query.Limit())
}
