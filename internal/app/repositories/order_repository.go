package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/db"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/qlin/dormtrade/internal/pkg/helpers"
	"github.com/qlin/dormtrade/internal/pkg/logger"
)

// OrderRepository handles database operations for orders. State transitions
// are compare-and-set updates whose WHERE clause carries the expected
// current state, so concurrent transitions cannot both succeed.
type OrderRepository struct {
	database *db.PostgresDB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(database *db.PostgresDB) *OrderRepository {
	return &OrderRepository{database: database}
}

// Create places an order in one transaction: the posting's stock is
// decremented with a conditional update that also checks the listing status,
// the order row is inserted, and a handoff reminder is queued for the
// seller. A zero-row decrement means the stock or the listing is gone; the
// posting is re-read inside the transaction to report which.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE postings
			SET quantity = quantity - $1, updated_at = now()
			WHERE id = $2 AND status = $3 AND quantity >= $1
		`, order.Quantity, order.PostingID, models.PostingStatusListed)
		if err != nil {
			logger.Error().Err(err).Msg("Error decrementing posting stock")
			return err
		}

		if cmdTag.RowsAffected() == 0 {
			var status models.PostingStatus
			err := tx.QueryRow(ctx,
				`SELECT status FROM postings WHERE id = $1`, order.PostingID).Scan(&status)
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrPostingNotFound
			}
			if err != nil {
				return fmt.Errorf("error inspecting posting after failed decrement: %w", err)
			}
			if status == models.PostingStatusDelisted {
				return apperrors.ErrPostingDelisted
			}
			return apperrors.ErrInsufficientStock
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO orders (posting_id, buyer_id, seller_id, quantity, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`, order.PostingID, order.BuyerID, order.SellerID, order.Quantity,
			models.OrderStatusPendingHandoff,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			logger.Error().Err(err).Msg("Error inserting order")
			return err
		}
		order.Status = models.OrderStatusPendingHandoff

		_, err = tx.Exec(ctx, `
			INSERT INTO notices (type, content, receiver_id, related_order_id, status)
			VALUES ($1, $2, $3, $4, $5)
		`, models.NoticeTypeHandoffReminder,
			fmt.Sprintf("You have a new order for \"%s\". Arrange the handoff with the buyer.", order.PostingTitle),
			order.SellerID, order.ID, models.NoticeStatusUnread)
		if err != nil {
			logger.Error().Err(err).Msg("Error queueing handoff reminder")
			return err
		}

		return nil
	})
}

// Common select query builder for orders with posting and party joins
func (r *OrderRepository) selectOrderQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"o.id", "o.posting_id", "o.buyer_id", "o.seller_id", "o.quantity",
		"o.status", "o.cancel_reason", "o.created_at", "o.updated_at",
		"p.title as posting_title", "p.price as posting_price",
		"b.username as buyer_name", "s.username as seller_name",
	).From("orders o").
		Join("postings p ON o.posting_id = p.id").
		Join("users b ON o.buyer_id = b.id").
		Join("users s ON o.seller_id = s.id").
		PlaceholderFormat(squirrel.Dollar)
}

// ScanOrder scans a row produced by selectOrderQuery
func ScanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.PostingID, &o.BuyerID, &o.SellerID, &o.Quantity,
		&o.Status, &o.CancelReason, &o.CreatedAt, &o.UpdatedAt,
		&o.PostingTitle, &o.PostingPrice,
		&o.BuyerName, &o.SellerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("error scanning order: %w", err)
	}
	return &o, nil
}

// GetByID retrieves an order by ID with joined display data
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	sqlStr, args, err := r.selectOrderQuery().Where(squirrel.Eq{"o.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return ScanOrder(r.database.Pool.QueryRow(ctx, sqlStr, args...))
}

// ConfirmHandoff moves an order to HANDED_OFF. Only the seller may confirm,
// and only from PENDING_HANDOFF; both conditions live in the WHERE clause.
func (r *OrderRepository) ConfirmHandoff(ctx context.Context, orderID, sellerID int64) error {
	cmdTag, err := r.database.Pool.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2 AND seller_id = $3 AND status = $4
	`, models.OrderStatusHandedOff, orderID, sellerID, models.OrderStatusPendingHandoff)
	if err != nil {
		logger.Error().Err(err).Msg("Error confirming handoff")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidOrderState
	}
	return nil
}

// Complete moves an order to COMPLETED. Only the buyer may complete, and
// only from HANDED_OFF.
func (r *OrderRepository) Complete(ctx context.Context, orderID, buyerID int64) error {
	cmdTag, err := r.database.Pool.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2 AND buyer_id = $3 AND status = $4
	`, models.OrderStatusCompleted, orderID, buyerID, models.OrderStatusHandedOff)
	if err != nil {
		logger.Error().Err(err).Msg("Error completing order")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidOrderState
	}
	return nil
}

// Cancel moves a non-terminal order to CANCELED and restores the reserved
// stock to the posting in the same transaction. Only the buyer may cancel.
func (r *OrderRepository) Cancel(ctx context.Context, orderID, buyerID int64, reason string) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var postingID int64
		var quantity int
		err := tx.QueryRow(ctx, `
			UPDATE orders SET status = $1, cancel_reason = $2, updated_at = now()
			WHERE id = $3 AND buyer_id = $4 AND status IN ($5, $6)
			RETURNING posting_id, quantity
		`, models.OrderStatusCanceled, reason, orderID, buyerID,
			models.OrderStatusPendingHandoff, models.OrderStatusHandedOff,
		).Scan(&postingID, &quantity)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrInvalidOrderState
			}
			logger.Error().Err(err).Msg("Error canceling order")
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE postings SET quantity = quantity + $1, updated_at = now()
			WHERE id = $2
		`, quantity, postingID)
		if err != nil {
			logger.Error().Err(err).Msg("Error restoring posting stock")
			return err
		}

		return nil
	})
}

// GetByParticipant retrieves a paginated list of orders in which the user is
// the buyer, the seller, or either, newest first
func (r *OrderRepository) GetByParticipant(ctx context.Context, userID int64, role string, page, size int) ([]*models.Order, dto.PaginationInfo, error) {
	var predicate squirrel.Sqlizer
	switch role {
	case "buyer":
		predicate = squirrel.Eq{"o.buyer_id": userID}
	case "seller":
		predicate = squirrel.Eq{"o.seller_id": userID}
	default:
		predicate = squirrel.Or{
			squirrel.Eq{"o.buyer_id": userID},
			squirrel.Eq{"o.seller_id": userID},
		}
	}

	countSql, countArgs, err := squirrel.Select("count(*)").From("orders o").
		Where(predicate).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.database.Pool.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting orders")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Order{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := r.selectOrderQuery().
		Where(predicate).
		OrderBy("o.created_at DESC", "o.id DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.database.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing orders")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		o, err := ScanOrder(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return orders, pagination, nil
}
