package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/debtdesk-ledger/internal/domain/agreement"
	"github.com/debtdesk-ledger/internal/platform/persistence"
)

// AgreementRepository implements the agreement.Repository interface for
// PostgreSQL. Installments live in their own table and are deleted with
// their agreement via ON DELETE CASCADE.
type AgreementRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewAgreementRepository creates a new PostgreSQL agreement repository
func NewAgreementRepository(logger *slog.Logger, db *persistence.PostgresDB) agreement.Repository {
	return &AgreementRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *AgreementRepository) WithTx(tx pgx.Tx) agreement.Repository {
	return &AgreementRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores an agreement together with its full installment sequence
func (r *AgreementRepository) Create(ctx context.Context, a *agreement.Agreement) error {
	query := `
		INSERT INTO agreements (id, owner_id, debt_id, description, total_value, original_value, installment_count, interest_rate, discount_rate, start_date, end_date, notes, savings, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.querier.Exec(ctx, query,
		a.ID,
		a.OwnerID,
		a.DebtID,
		a.Description,
		a.TotalValue,
		a.OriginalValue,
		a.InstallmentCount,
		a.InterestRate,
		a.DiscountRate,
		a.StartDate,
		a.EndDate,
		a.Notes,
		a.Savings,
		a.Status,
		a.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create agreement", "id", a.ID.String(), "error", err)
		return fmt.Errorf("failed to create agreement: %w", err)
	}

	installmentQuery := `
		INSERT INTO installments (id, agreement_id, sequence, value, due_date, paid, paid_at, interest, penalty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, inst := range a.Installments {
		_, err := r.querier.Exec(ctx, installmentQuery,
			inst.ID,
			inst.AgreementID,
			inst.Sequence,
			inst.Value,
			inst.DueDate,
			inst.Paid,
			inst.PaidAt,
			inst.Interest,
			inst.Penalty,
		)
		if err != nil {
			r.logger.Error("Failed to create installment",
				"agreement_id", a.ID.String(),
				"sequence", inst.Sequence,
				"error", err,
			)
			return fmt.Errorf("failed to create installment %d: %w", inst.Sequence, err)
		}
	}

	return nil
}

// GetByID retrieves an agreement with its installments, scoped to the owner
func (r *AgreementRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*agreement.Agreement, error) {
	query := `
		SELECT id, owner_id, debt_id, description, total_value, original_value, installment_count, interest_rate, discount_rate, start_date, end_date, notes, savings, status, created_at
		FROM agreements
		WHERE id = $1 AND owner_id = $2
	`

	var a agreement.Agreement
	err := r.querier.QueryRow(ctx, query, id, ownerID).Scan(
		&a.ID,
		&a.OwnerID,
		&a.DebtID,
		&a.Description,
		&a.TotalValue,
		&a.OriginalValue,
		&a.InstallmentCount,
		&a.InterestRate,
		&a.DiscountRate,
		&a.StartDate,
		&a.EndDate,
		&a.Notes,
		&a.Savings,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, agreement.ErrAgreementNotFound{AgreementID: id}
		}
		r.logger.Error("Failed to get agreement", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get agreement: %w", err)
	}

	installments, err := r.loadInstallments(ctx, []uuid.UUID{a.ID})
	if err != nil {
		return nil, err
	}
	a.Installments = installments[a.ID]

	return &a, nil
}

// GetByDebtID retrieves the agreement owned by a debt, with installments.
// The cascade logic assumes at most one agreement per debt.
func (r *AgreementRepository) GetByDebtID(ctx context.Context, debtID uuid.UUID) (*agreement.Agreement, error) {
	query := `
		SELECT id, owner_id, debt_id, description, total_value, original_value, installment_count, interest_rate, discount_rate, start_date, end_date, notes, savings, status, created_at
		FROM agreements
		WHERE debt_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var a agreement.Agreement
	err := r.querier.QueryRow(ctx, query, debtID).Scan(
		&a.ID,
		&a.OwnerID,
		&a.DebtID,
		&a.Description,
		&a.TotalValue,
		&a.OriginalValue,
		&a.InstallmentCount,
		&a.InterestRate,
		&a.DiscountRate,
		&a.StartDate,
		&a.EndDate,
		&a.Notes,
		&a.Savings,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No agreement for this debt
		}
		r.logger.Error("Failed to get agreement by debt", "debt_id", debtID.String(), "error", err)
		return nil, fmt.Errorf("failed to get agreement by debt: %w", err)
	}

	installments, err := r.loadInstallments(ctx, []uuid.UUID{a.ID})
	if err != nil {
		return nil, err
	}
	a.Installments = installments[a.ID]

	return &a, nil
}

// ListByOwner retrieves all agreements of an owner with their
// installments, newest first
func (r *AgreementRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*agreement.Agreement, error) {
	query := `
		SELECT id, owner_id, debt_id, description, total_value, original_value, installment_count, interest_rate, discount_rate, start_date, end_date, notes, savings, status, created_at
		FROM agreements
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.querier.Query(ctx, query, ownerID)
	if err != nil {
		r.logger.Error("Failed to list agreements", "owner_id", ownerID.String(), "error", err)
		return nil, fmt.Errorf("failed to list agreements: %w", err)
	}
	defer rows.Close()

	var agreements []*agreement.Agreement
	var ids []uuid.UUID
	for rows.Next() {
		var a agreement.Agreement
		err := rows.Scan(
			&a.ID,
			&a.OwnerID,
			&a.DebtID,
			&a.Description,
			&a.TotalValue,
			&a.OriginalValue,
			&a.InstallmentCount,
			&a.InterestRate,
			&a.DiscountRate,
			&a.StartDate,
			&a.EndDate,
			&a.Notes,
			&a.Savings,
			&a.Status,
			&a.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan agreement", "error", err)
			return nil, fmt.Errorf("failed to scan agreement: %w", err)
		}
		agreements = append(agreements, &a)
		ids = append(ids, a.ID)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over agreements", "error", err)
		return nil, fmt.Errorf("error iterating over agreements: %w", err)
	}

	if len(ids) == 0 {
		return agreements, nil
	}

	installments, err := r.loadInstallments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range agreements {
		a.Installments = installments[a.ID]
	}

	return agreements, nil
}

// UpdateStatus sets the lifecycle status of an agreement
func (r *AgreementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status agreement.Status) error {
	query := `
		UPDATE agreements
		SET status = $1
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update agreement status", "id", id.String(), "error", err)
		return fmt.Errorf("failed to update agreement status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return agreement.ErrAgreementNotFound{AgreementID: id}
	}

	return nil
}

// UpdateInstallment persists an installment's paid flag and payment
// timestamp. Value, due date and sequence are deliberately not updatable.
func (r *AgreementRepository) UpdateInstallment(ctx context.Context, inst *agreement.Installment) error {
	query := `
		UPDATE installments
		SET paid = $1, paid_at = $2
		WHERE id = $3 AND agreement_id = $4
	`

	result, err := r.querier.Exec(ctx, query, inst.Paid, inst.PaidAt, inst.ID, inst.AgreementID)
	if err != nil {
		r.logger.Error("Failed to update installment", "id", inst.ID.String(), "error", err)
		return fmt.Errorf("failed to update installment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return agreement.ErrInstallmentNotFound{InstallmentID: inst.ID}
	}

	return nil
}

// Delete removes an agreement and, through the schema cascade, its
// installments, scoped to the owning user
func (r *AgreementRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	query := `
		DELETE FROM agreements
		WHERE id = $1 AND owner_id = $2
	`

	result, err := r.querier.Exec(ctx, query, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete agreement", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete agreement: %w", err)
	}

	if result.RowsAffected() == 0 {
		return agreement.ErrAgreementNotFound{AgreementID: id}
	}

	return nil
}

// DeleteByDebtID removes any agreements referencing a debt. Used by the
// debt deletion cascade; deleting zero rows is not an error.
func (r *AgreementRepository) DeleteByDebtID(ctx context.Context, debtID uuid.UUID) error {
	query := `
		DELETE FROM agreements
		WHERE debt_id = $1
	`

	_, err := r.querier.Exec(ctx, query, debtID)
	if err != nil {
		r.logger.Error("Failed to delete agreements by debt", "debt_id", debtID.String(), "error", err)
		return fmt.Errorf("failed to delete agreements by debt: %w", err)
	}

	return nil
}

// loadInstallments fetches the installments of the given agreements,
// ordered by sequence, keyed by agreement id
func (r *AgreementRepository) loadInstallments(ctx context.Context, agreementIDs []uuid.UUID) (map[uuid.UUID][]*agreement.Installment, error) {
	query := `
		SELECT id, agreement_id, sequence, value, due_date, paid, paid_at, interest, penalty
		FROM installments
		WHERE agreement_id = ANY($1)
		ORDER BY agreement_id, sequence ASC
	`

	rows, err := r.querier.Query(ctx, query, agreementIDs)
	if err != nil {
		r.logger.Error("Failed to load installments", "error", err)
		return nil, fmt.Errorf("failed to load installments: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]*agreement.Installment, len(agreementIDs))
	for rows.Next() {
		var inst agreement.Installment
		err := rows.Scan(
			&inst.ID,
			&inst.AgreementID,
			&inst.Sequence,
			&inst.Value,
			&inst.DueDate,
			&inst.Paid,
			&inst.PaidAt,
			&inst.Interest,
			&inst.Penalty,
		)
		if err != nil {
			r.logger.Error("Failed to scan installment", "error", err)
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		result[inst.AgreementID] = append(result[inst.AgreementID], &inst)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over installments", "error", err)
		return nil, fmt.Errorf("error iterating over installments: %w", err)
	}

	return result, nil
}
