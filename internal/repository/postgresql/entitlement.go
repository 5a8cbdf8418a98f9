package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/leave"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/database"
)

type entitlementRepository struct {
	db *database.DB
}

func NewEntitlementRepository(db *database.DB) leave.EntitlementRepository {
	return &entitlementRepository{db: db}
}

// Get implements leave.EntitlementRepository. The table holds a single policy
// row; a missing row falls back to the historical defaults rather than
// failing balance views.
func (r *entitlementRepository) Get(ctx context.Context) (leave.Entitlement, error) {
	q := GetQuerier(ctx, r.db)

	var e leave.Entitlement
	err := q.QueryRow(ctx, `
		SELECT paid_leave, sick_leave, casual_leave
		FROM leave_entitlements
		LIMIT 1
	`).Scan(&e.PaidLeave, &e.SickLeave, &e.CasualLeave)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Entitlement{PaidLeave: 12, SickLeave: 8, CasualLeave: 5}, nil
		}
		return leave.Entitlement{}, fmt.Errorf("failed to get leave entitlement: %w", err)
	}
	return e, nil
}
