package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jeffika-cabs-backend/internal/domain"
	"jeffika-cabs-backend/internal/repository"

	"github.com/lib/pq"
)

type hireRepository struct {
	db *sql.DB
}

func NewHireRepository(db *sql.DB) repository.HireRepository {
	return &hireRepository{db: db}
}

const hireColumns = `id, user_id, total_amount, status, payment_method, payment_amount, payment_transaction_id, payment_status, payment_receipt, payment_phone, created_on, updated_on`

func scanHire(row interface{ Scan(...any) error }) (*domain.Hire, error) {
	h := &domain.Hire{}
	var transactionID, receipt, payerPhone sql.NullString
	err := row.Scan(&h.ID, &h.UserID, &h.TotalAmount, &h.Status, &h.Payment.Method, &h.Payment.Amount, &transactionID, &h.Payment.Status, &receipt, &payerPhone, &h.CreatedOn, &h.UpdatedOn)
	if err != nil {
		return nil, err
	}
	h.Payment.TransactionID = transactionID.String
	h.Payment.Receipt = receipt.String
	h.Payment.PayerPhone = payerPhone.String
	return h, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *hireRepository) Create(ctx context.Context, hire *domain.Hire) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO hires (user_id, total_amount, status, payment_method, payment_amount, payment_transaction_id, payment_status, payment_receipt, payment_phone, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_on, updated_on`
	err = tx.QueryRowContext(ctx, query,
		hire.UserID, hire.TotalAmount, hire.Status,
		hire.Payment.Method, hire.Payment.Amount, nullable(hire.Payment.TransactionID),
		hire.Payment.Status, nullable(hire.Payment.Receipt), nullable(hire.Payment.PayerPhone),
		now, now,
	).Scan(&hire.ID, &hire.CreatedOn, &hire.UpdatedOn)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO hire_items (hire_id, car_id, start_date, end_date, price_per_day, total_price)
	              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	for i := range hire.Items {
		item := &hire.Items[i]
		item.HireID = hire.ID
		if err := tx.QueryRowContext(ctx, itemQuery, hire.ID, item.CarID, item.StartDate, item.EndDate, item.PricePerDay, item.TotalPrice).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *hireRepository) loadItems(ctx context.Context, hireIDs []int32) (map[int32][]domain.HireItem, error) {
	ids := make([]int64, len(hireIDs))
	for i, id := range hireIDs {
		ids[i] = int64(id)
	}
	query := `SELECT i.id, i.hire_id, i.car_id, i.start_date, i.end_date, i.price_per_day, i.total_price,
	                 c.id, c.brand, c.model, c.year, c.registration_number, c.price_per_day, c.availability_status
	          FROM hire_items i JOIN cars c ON c.id = i.car_id
	          WHERE i.hire_id = ANY($1) ORDER BY i.id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int32][]domain.HireItem)
	for rows.Next() {
		var item domain.HireItem
		car := &domain.Car{}
		if err := rows.Scan(&item.ID, &item.HireID, &item.CarID, &item.StartDate, &item.EndDate, &item.PricePerDay, &item.TotalPrice,
			&car.ID, &car.Brand, &car.Model, &car.Year, &car.RegistrationNumber, &car.PricePerDay, &car.AvailabilityStatus); err != nil {
			return nil, err
		}
		item.Car = car
		items[item.HireID] = append(items[item.HireID], item)
	}
	return items, rows.Err()
}

func (r *hireRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Hire, error) {
	hire, err := scanHire(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrHireNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, []int32{hire.ID})
	if err != nil {
		return nil, err
	}
	hire.Items = items[hire.ID]
	return hire, nil
}

func (r *hireRepository) GetByID(ctx context.Context, id int32) (*domain.Hire, error) {
	return r.getOne(ctx, `SELECT `+hireColumns+` FROM hires WHERE id = $1`, id)
}

func (r *hireRepository) GetByIDForUser(ctx context.Context, id, userID int32) (*domain.Hire, error) {
	return r.getOne(ctx, `SELECT `+hireColumns+` FROM hires WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *hireRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Hire, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM hires WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + hireColumns + ` FROM hires WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var hires []domain.Hire
	var ids []int32
	for rows.Next() {
		hire, err := scanHire(rows)
		if err != nil {
			return nil, 0, err
		}
		hires = append(hires, *hire)
		ids = append(ids, hire.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		items, err := r.loadItems(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range hires {
			hires[i].Items = items[hires[i].ID]
		}
	}
	return hires, count, nil
}

func (r *hireRepository) SetTransactionID(ctx context.Context, id int32, transactionID string) error {
	query := `UPDATE hires SET payment_transaction_id = $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, transactionID, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrHireNotFound
	}
	return nil
}

func (r *hireRepository) UpdateStatus(ctx context.Context, id int32, from []domain.HireStatus, to domain.HireStatus) (bool, error) {
	statuses := make([]string, len(from))
	for i, s := range from {
		statuses[i] = string(s)
	}
	query := `UPDATE hires SET status = $1, updated_on = $2 WHERE id = $3 AND status = ANY($4)`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, pq.Array(statuses))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ConfirmPaymentByTransactionID applies the success transition in one
// round trip. Confirmed records remain eligible so a replayed callback
// re-applies the same metadata instead of erroring.
func (r *hireRepository) ConfirmPaymentByTransactionID(ctx context.Context, transactionID, receipt, payerPhone string, amount int64) (*domain.Hire, error) {
	query := fmt.Sprintf(`UPDATE hires
	          SET status = 'confirmed', payment_status = 'completed', payment_receipt = $2, payment_phone = $3, payment_amount = $4, updated_on = $5
	          WHERE payment_transaction_id = $1 AND status IN ('pending', 'confirmed')
	          RETURNING %s`, hireColumns)
	hire, err := scanHire(r.db.QueryRowContext(ctx, query, transactionID, receipt, payerPhone, amount, time.Now()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrHireNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, []int32{hire.ID})
	if err != nil {
		return nil, err
	}
	hire.Items = items[hire.ID]
	return hire, nil
}

func (r *hireRepository) FailPaymentByTransactionID(ctx context.Context, transactionID string) (*domain.Hire, error) {
	query := fmt.Sprintf(`UPDATE hires
	          SET status = 'failed', payment_status = 'failed', updated_on = $2
	          WHERE payment_transaction_id = $1 AND status IN ('pending', 'failed')
	          RETURNING %s`, hireColumns)
	hire, err := scanHire(r.db.QueryRowContext(ctx, query, transactionID, time.Now()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrHireNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, []int32{hire.ID})
	if err != nil {
		return nil, err
	}
	hire.Items = items[hire.ID]
	return hire, nil
}

func (r *hireRepository) ListExpired(ctx context.Context, now time.Time) ([]domain.Hire, error) {
	query := `SELECT ` + hireColumns + ` FROM hires h
	          WHERE h.status IN ('pending', 'confirmed')
	            AND EXISTS (SELECT 1 FROM hire_items i WHERE i.hire_id = h.id AND i.end_date <= $1)
	          ORDER BY h.id`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hires []domain.Hire
	var ids []int32
	for rows.Next() {
		hire, err := scanHire(rows)
		if err != nil {
			return nil, err
		}
		hires = append(hires, *hire)
		ids = append(ids, hire.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		items, err := r.loadItems(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range hires {
			hires[i].Items = items[hires[i].ID]
		}
	}
	return hires, nil
}
