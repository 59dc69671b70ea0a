// Package postgres provides PostgreSQL implementations of the domain
// repositories. Debts, agreements and the ledger outbox all live in the
// same database so the agreement cascade can run in one transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/debtdesk-ledger/internal/domain/debt"
	"github.com/debtdesk-ledger/internal/platform/persistence"
)

// DebtRepository implements the debt.Repository interface for PostgreSQL
type DebtRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewDebtRepository creates a new PostgreSQL debt repository
func NewDebtRepository(logger *slog.Logger, db *persistence.PostgresDB) debt.Repository {
	return &DebtRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls.
func (r *DebtRepository) WithTx(tx pgx.Tx) debt.Repository {
	return &DebtRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new debt
func (r *DebtRepository) Create(ctx context.Context, d *debt.Debt) error {
	query := `
		INSERT INTO debts (id, owner_id, description, creditor, original_value, current_value, due_date, debt_type, notes, status, created_at, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.querier.Exec(ctx, query,
		d.ID,
		d.OwnerID,
		d.Description,
		d.Creditor,
		d.OriginalValue,
		d.CurrentValue,
		d.DueDate,
		d.DebtType,
		d.Notes,
		d.Status,
		d.CreatedAt,
		d.SettledAt,
	)
	if err != nil {
		r.logger.Error("Failed to create debt", "error", err)
		return fmt.Errorf("failed to create debt: %w", err)
	}

	return nil
}

// GetByID retrieves a debt by its ID, scoped to the owning user
func (r *DebtRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*debt.Debt, error) {
	query := `
		SELECT id, owner_id, description, creditor, original_value, current_value, due_date, debt_type, notes, status, created_at, settled_at
		FROM debts
		WHERE id = $1 AND owner_id = $2
	`

	var d debt.Debt
	err := r.querier.QueryRow(ctx, query, id, ownerID).Scan(
		&d.ID,
		&d.OwnerID,
		&d.Description,
		&d.Creditor,
		&d.OriginalValue,
		&d.CurrentValue,
		&d.DueDate,
		&d.DebtType,
		&d.Notes,
		&d.Status,
		&d.CreatedAt,
		&d.SettledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, debt.ErrDebtNotFound{DebtID: id}
		}
		r.logger.Error("Failed to get debt", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}

	return &d, nil
}

// ListByOwner retrieves all debts of an owner, newest first
func (r *DebtRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*debt.Debt, error) {
	query := `
		SELECT id, owner_id, description, creditor, original_value, current_value, due_date, debt_type, notes, status, created_at, settled_at
		FROM debts
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.querier.Query(ctx, query, ownerID)
	if err != nil {
		r.logger.Error("Failed to list debts", "owner_id", ownerID.String(), "error", err)
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*debt.Debt
	for rows.Next() {
		var d debt.Debt
		err := rows.Scan(
			&d.ID,
			&d.OwnerID,
			&d.Description,
			&d.Creditor,
			&d.OriginalValue,
			&d.CurrentValue,
			&d.DueDate,
			&d.DebtType,
			&d.Notes,
			&d.Status,
			&d.CreatedAt,
			&d.SettledAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan debt", "error", err)
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, &d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over debts", "error", err)
		return nil, fmt.Errorf("error iterating over debts: %w", err)
	}

	return debts, nil
}

// Update persists the mutable fields of an existing debt
func (r *DebtRepository) Update(ctx context.Context, d *debt.Debt) error {
	query := `
		UPDATE debts
		SET description = $1, creditor = $2, original_value = $3, current_value = $4, due_date = $5, debt_type = $6, notes = $7, status = $8, settled_at = $9
		WHERE id = $10 AND owner_id = $11
	`

	result, err := r.querier.Exec(ctx, query,
		d.Description,
		d.Creditor,
		d.OriginalValue,
		d.CurrentValue,
		d.DueDate,
		d.DebtType,
		d.Notes,
		d.Status,
		d.SettledAt,
		d.ID,
		d.OwnerID,
	)
	if err != nil {
		r.logger.Error("Failed to update debt", "id", d.ID.String(), "error", err)
		return fmt.Errorf("failed to update debt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return debt.ErrDebtNotFound{DebtID: d.ID}
	}

	return nil
}

// Delete removes a debt, scoped to the owning user. Agreements
// referencing the debt are deleted by the service cascade beforehand.
func (r *DebtRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	query := `
		DELETE FROM debts
		WHERE id = $1 AND owner_id = $2
	`

	result, err := r.querier.Exec(ctx, query, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete debt", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return debt.ErrDebtNotFound{DebtID: id}
	}

	return nil
}
