package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-backend/model"
)

const profileColumns = `id, user_id, business_name, state,
	offer_rate, offered_by, offered_at, negotiation_round,
	counter_rate, counter_reason, counter_submitted_at,
	offer_rejection_reason, responded_at, commission_rate,
	reviewed_at, reviewed_by, rejection_reason, approved_at,
	created_at, updated_at`

type SellerProfileRepository struct {
	db *sql.DB
}

func NewSellerProfileRepository(db *sql.DB) *SellerProfileRepository {
	return &SellerProfileRepository{db: db}
}

// ProfileFilter narrows ListProfiles. An empty States matches every profile.
type ProfileFilter struct {
	States []model.NegotiationState
	Limit  int
	Offset int
}

func (r *SellerProfileRepository) Insert(ctx context.Context, p *model.SellerProfile) error {
	query := `INSERT INTO seller_profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, profileArgs(p)...)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert seller profile: %w", err)
	}
	return nil
}

// Update overwrites the whole row. Concurrent writers are not serialized: the
// last write wins.
func (r *SellerProfileRepository) Update(ctx context.Context, p *model.SellerProfile) error {
	query := `UPDATE seller_profiles SET
		business_name = ?, state = ?,
		offer_rate = ?, offered_by = ?, offered_at = ?, negotiation_round = ?,
		counter_rate = ?, counter_reason = ?, counter_submitted_at = ?,
		offer_rejection_reason = ?, responded_at = ?, commission_rate = ?,
		reviewed_at = ?, reviewed_by = ?, rejection_reason = ?, approved_at = ?,
		updated_at = ?
		WHERE id = ?`
	args := profileArgs(p)
	// profileArgs starts with id, user_id and ends with created_at, updated_at.
	updateArgs := append([]any{}, args[2:len(args)-2]...)
	updateArgs = append(updateArgs, p.UpdatedAt, p.ID)

	res, err := r.db.ExecContext(ctx, query, updateArgs...)
	if err != nil {
		return fmt.Errorf("update seller profile %s: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update seller profile %s: %w", p.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns nil, nil when no profile matches.
func (r *SellerProfileRepository) GetByID(ctx context.Context, id string) (*model.SellerProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM seller_profiles WHERE id = ?`, id)
	return scanOptionalProfile(row)
}

// GetByUserID returns nil, nil when the user has no profile.
func (r *SellerProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.SellerProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM seller_profiles WHERE user_id = ?`, userID)
	return scanOptionalProfile(row)
}

func (r *SellerProfileRepository) List(ctx context.Context, filter ProfileFilter) ([]model.SellerProfile, error) {
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + profileColumns + ` FROM seller_profiles`
	var args []any
	if len(filter.States) > 0 {
		placeholders := make([]string, len(filter.States))
		for i, s := range filter.States {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		query += ` WHERE state IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list seller profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.SellerProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list seller profiles: %w", err)
	}
	return profiles, nil
}

func profileArgs(p *model.SellerProfile) []any {
	var (
		offerRate      decimal.NullDecimal
		offeredBy      sql.NullString
		offeredAt      sql.NullTime
		round          int
		counterRate    decimal.NullDecimal
		counterReason  sql.NullString
		counterAt      sql.NullTime
		offerRejection sql.NullString
		respondedAt    sql.NullTime
		commission     decimal.NullDecimal
	)
	if o := p.Offer; o != nil {
		offerRate = decimal.NewNullDecimal(o.Rate)
		offeredBy = nullString(o.OfferedBy)
		offeredAt = sql.NullTime{Time: o.OfferedAt, Valid: true}
		round = o.Round
		if c := o.Counter; c != nil {
			counterRate = decimal.NewNullDecimal(c.Rate)
			counterReason = nullString(c.Reason)
			counterAt = sql.NullTime{Time: c.SubmittedAt, Valid: true}
		}
		offerRejection = nullString(o.RejectionReason)
		respondedAt = nullTime(o.RespondedAt)
	}
	if p.CommissionRate != nil {
		commission = decimal.NewNullDecimal(*p.CommissionRate)
	}

	return []any{
		p.ID, p.UserID, p.BusinessName, string(p.State),
		offerRate, offeredBy, offeredAt, round,
		counterRate, counterReason, counterAt,
		offerRejection, respondedAt, commission,
		nullTime(p.ReviewedAt), nullString(p.ReviewedBy), nullString(p.RejectionReason), nullTime(p.ApprovedAt),
		p.CreatedAt, p.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOptionalProfile(row rowScanner) (*model.SellerProfile, error) {
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func scanProfile(row rowScanner) (*model.SellerProfile, error) {
	var (
		p              model.SellerProfile
		state          string
		offerRate      decimal.NullDecimal
		offeredBy      sql.NullString
		offeredAt      sql.NullTime
		round          int
		counterRate    decimal.NullDecimal
		counterReason  sql.NullString
		counterAt      sql.NullTime
		offerRejection sql.NullString
		respondedAt    sql.NullTime
		commission     decimal.NullDecimal
		reviewedAt     sql.NullTime
		reviewedBy     sql.NullString
		rejection      sql.NullString
		approvedAt     sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.BusinessName, &state,
		&offerRate, &offeredBy, &offeredAt, &round,
		&counterRate, &counterReason, &counterAt,
		&offerRejection, &respondedAt, &commission,
		&reviewedAt, &reviewedBy, &rejection, &approvedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan seller profile: %w", err)
	}

	p.State = model.NegotiationState(state)
	if offerRate.Valid {
		p.Offer = &model.CommissionOffer{
			Rate:            offerRate.Decimal,
			OfferedBy:       offeredBy.String,
			OfferedAt:       offeredAt.Time,
			Round:           round,
			RejectionReason: offerRejection.String,
			RespondedAt:     timePtr(respondedAt),
		}
		if counterRate.Valid {
			p.Offer.Counter = &model.CounterOffer{
				Rate:        counterRate.Decimal,
				Reason:      counterReason.String,
				SubmittedAt: counterAt.Time,
			}
		}
	}
	if commission.Valid {
		rate := commission.Decimal
		p.CommissionRate = &rate
	}
	p.ReviewedAt = timePtr(reviewedAt)
	p.ReviewedBy = reviewedBy.String
	p.RejectionReason = rejection.String
	p.ApprovedAt = timePtr(approvedAt)
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
