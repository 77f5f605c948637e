package queries

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListAvailableDriversQueryHandler is the read side of the assignment service.
//
// The store narrows the list to live, verified, online drivers in a fulfillment
// role and computes each driver's active-order count; the CandidateRanker then
// re-checks eligibility and orders the result by the configured policy. Presence
// is read from the store on every call.
type ListAvailableDriversQueryHandler struct {
	db     *gorm.DB
	ranker services.CandidateRanker
}

func NewListAvailableDriversQueryHandler(db *gorm.DB, ranker services.CandidateRanker) ListAvailableDriversQueryHandler {
	return ListAvailableDriversQueryHandler{db: db, ranker: ranker}
}

type candidateRow struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Name               string
	Phone              string
	Role               string
	VerificationStatus string
	IsOnline           bool
	ActiveOrderCount   int64
}

func (h ListAvailableDriversQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableDriversQuery,
) ([]AvailableDriver, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := identity.RequireAdmin(query.Principal(), "list available drivers"); err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(driver.Roles()))
	for _, r := range driver.Roles() {
		roles = append(roles, r.String())
	}
	active := make([]string, 0, len(order.ActiveStatuses()))
	for _, s := range order.ActiveStatuses() {
		active = append(active, s.String())
	}

	var rows []candidateRow
	err := h.db.WithContext(ctx).
		Table("drivers AS d").
		Select(`d.id, d.user_id, u.name, u.phone, d.role, d.verification_status, d.is_online,
			(SELECT COUNT(*) FROM orders AS o
			 WHERE o.driver_id = d.id AND o.deleted_at IS NULL AND o.status IN ?) AS active_order_count`,
			active).
		Joins("JOIN users AS u ON u.id = d.user_id").
		Where("d.deleted_at IS NULL").
		Where("d.role IN ?", roles).
		Where("d.verification_status = ?", driver.VerificationVerified.String()).
		Where("d.is_online = ?", true).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list available drivers: %w", err)
	}

	candidates := make([]services.Candidate, 0, len(rows))
	for _, row := range rows {
		c, mapErr := row.toCandidate()
		if mapErr != nil {
			return nil, mapErr
		}
		candidates = append(candidates, c)
	}

	ranked := h.ranker.Rank(candidates)

	out := make([]AvailableDriver, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, AvailableDriver{
			ID:               c.Driver.ID(),
			Name:             c.Driver.Name(),
			Phone:            c.Driver.Phone(),
			Role:             c.Driver.Role(),
			ActiveOrderCount: c.ActiveOrderCount,
		})
	}
	return out, nil
}

func (r candidateRow) toCandidate() (services.Candidate, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return services.Candidate{}, err
	}
	userID, err := kernel.UUIDFromBytes(r.UserID[:])
	if err != nil {
		return services.Candidate{}, err
	}

	d, err := driver.RestoreDriver(driver.Snapshot{
		ID:           id,
		UserID:       userID,
		Name:         r.Name,
		Phone:        r.Phone,
		Role:         driver.Role(r.Role),
		Verification: driver.VerificationStatus(r.VerificationStatus),
		IsOnline:     r.IsOnline,
	})
	if err != nil {
		return services.Candidate{}, err
	}
	return services.Candidate{Driver: d, ActiveOrderCount: int(r.ActiveOrderCount)}, nil
}
