package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/justtry/crm/internal/entity"
)

// LeadRepository stores each lead as one row with JSONB columns for the
// nested collections. A save is therefore a single UPDATE, the atomic
// whole-aggregate write the disbursement flow depends on, guarded by an
// optimistic version check.
type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	documents, history, bankDetails, disbursements, err := marshalAggregates(lead)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO leads (
			id, name, email, phone, service_type, sub_category, status, value,
			assigned_to, documents, history, bank_details, disbursements,
			version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	lead.Version = 1
	_, err = r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone,
		string(lead.ServiceType), lead.SubCategory, lead.Status, lead.Value,
		lead.AssignedTo, documents, history, bankDetails, disbursements,
		lead.Version, lead.CreatedAt, lead.UpdatedAt,
	)
	return err
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, name, email, phone, service_type, sub_category, status, value,
		       assigned_to, documents, history, bank_details, disbursements,
		       version, created_at, updated_at
		FROM leads
		WHERE id = $1
	`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

// Save writes the whole aggregate. A zero rows-affected result means the
// version moved underneath us (or the lead vanished); either way the caller's
// snapshot is stale.
func (r *LeadRepository) Save(ctx context.Context, lead *entity.Lead) error {
	documents, history, bankDetails, disbursements, err := marshalAggregates(lead)
	if err != nil {
		return err
	}

	query := `
		UPDATE leads SET
			name = $2, email = $3, phone = $4, status = $5, value = $6,
			assigned_to = $7, documents = $8, history = $9, bank_details = $10,
			disbursements = $11, version = version + 1, updated_at = $12
		WHERE id = $1 AND version = $13
	`

	res, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Status, lead.Value,
		lead.AssignedTo, documents, history, bankDetails, disbursements,
		lead.UpdatedAt, lead.Version,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrVersionConflict
	}

	lead.Version++
	return nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	query := `
		SELECT id, name, email, phone, service_type, sub_category, status, value,
		       assigned_to, documents, history, bank_details, disbursements,
		       version, created_at, updated_at
		FROM leads
	`
	var args []interface{}
	switch {
	case filter.AssignedTo != "":
		query += ` WHERE assigned_to = $1`
		args = append(args, filter.AssignedTo)
	case len(filter.ServiceTypes) > 0:
		types := make([]string, len(filter.ServiceTypes))
		for i, t := range filter.ServiceTypes {
			types[i] = string(t)
		}
		query += ` WHERE service_type = ANY($1)`
		args = append(args, pq.Array(types))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var serviceType string
	var documents, history, bankDetails, disbursements []byte

	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone,
		&serviceType, &lead.SubCategory, &lead.Status, &lead.Value,
		&lead.AssignedTo, &documents, &history, &bankDetails, &disbursements,
		&lead.Version, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.ServiceType = entity.ServiceType(serviceType)
	if err := unmarshalInto(documents, &lead.Documents); err != nil {
		return nil, err
	}
	if err := unmarshalInto(history, &lead.History); err != nil {
		return nil, err
	}
	if err := unmarshalInto(bankDetails, &lead.BankDetails); err != nil {
		return nil, err
	}
	if err := unmarshalInto(disbursements, &lead.Disbursements); err != nil {
		return nil, err
	}
	return &lead, nil
}

func marshalAggregates(lead *entity.Lead) ([]byte, []byte, []byte, []byte, error) {
	documents, err := json.Marshal(lead.Documents)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal documents: %w", err)
	}
	history, err := json.Marshal(lead.History)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal history: %w", err)
	}
	bankDetails, err := json.Marshal(lead.BankDetails)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal bank details: %w", err)
	}
	disbursements, err := json.Marshal(lead.Disbursements)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal disbursements: %w", err)
	}
	return documents, history, bankDetails, disbursements, nil
}

func unmarshalInto(data []byte, dest interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}
