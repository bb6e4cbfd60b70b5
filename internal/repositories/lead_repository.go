package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"freshsales/internal/models"
)

type LeadRepository struct {
	db dbtx
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &LeadRepository{db: db}
}

func newLeadRepositoryTx(tx *sql.Tx) *LeadRepository {
	return &LeadRepository{db: tx}
}

const leadColumns = `
	id, company_name, contact_name, email, phone, status,
	business_type, kitchen_size, employee_count, branch_count, is_chain,
	estimated_volume,
	pain_staff_shortage, pain_high_costs, pain_food_waste,
	pain_quality_inconsistency, pain_time_pressure, pain_supplier_quality,
	pain_unreliable_delivery, pain_poor_service, pain_notes,
	created_at, updated_at
`

func (r *LeadRepository) Create(lead *models.Lead) (int64, error) {
	const query = `
		INSERT INTO leads
			(company_name, contact_name, email, phone, status,
			 business_type, kitchen_size, employee_count, branch_count, is_chain,
			 estimated_volume,
			 pain_staff_shortage, pain_high_costs, pain_food_waste,
			 pain_quality_inconsistency, pain_time_pressure, pain_supplier_quality,
			 pain_unreliable_delivery, pain_poor_service, pain_notes,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(
		query,
		lead.CompanyName, lead.ContactName, lead.Email, lead.Phone, lead.Status,
		lead.BusinessType, lead.KitchenSize, lead.EmployeeCount, lead.BranchCount, lead.IsChain,
		lead.EstimatedVolume,
		lead.PainStaffShortage, lead.PainHighCosts, lead.PainFoodWaste,
		lead.PainQualityInconsistency, lead.PainTimePressure, lead.PainSupplierQuality,
		lead.PainUnreliableDelivery, lead.PainPoorService, lead.PainNotes,
		lead.CreatedAt, lead.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create lead: %w", err)
	}
	lead.ID = id
	return id, nil
}

func (r *LeadRepository) GetByID(id int64) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id=$1`
	lead := &models.Lead{}
	err := r.db.QueryRow(query, id).Scan(
		&lead.ID, &lead.CompanyName, &lead.ContactName, &lead.Email, &lead.Phone, &lead.Status,
		&lead.BusinessType, &lead.KitchenSize, &lead.EmployeeCount, &lead.BranchCount, &lead.IsChain,
		&lead.EstimatedVolume,
		&lead.PainStaffShortage, &lead.PainHighCosts, &lead.PainFoodWaste,
		&lead.PainQualityInconsistency, &lead.PainTimePressure, &lead.PainSupplierQuality,
		&lead.PainUnreliableDelivery, &lead.PainPoorService, &lead.PainNotes,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) Update(lead *models.Lead) error {
	const query = `
		UPDATE leads
		SET company_name=$1, contact_name=$2, email=$3, phone=$4, status=$5,
		    business_type=$6, kitchen_size=$7, employee_count=$8, branch_count=$9,
		    is_chain=$10, estimated_volume=$11,
		    pain_staff_shortage=$12, pain_high_costs=$13, pain_food_waste=$14,
		    pain_quality_inconsistency=$15, pain_time_pressure=$16,
		    pain_supplier_quality=$17, pain_unreliable_delivery=$18,
		    pain_poor_service=$19, pain_notes=$20, updated_at=$21
		WHERE id=$22
	`
	_, err := r.db.Exec(
		query,
		lead.CompanyName, lead.ContactName, lead.Email, lead.Phone, lead.Status,
		lead.BusinessType, lead.KitchenSize, lead.EmployeeCount, lead.BranchCount,
		lead.IsChain, lead.EstimatedVolume,
		lead.PainStaffShortage, lead.PainHighCosts, lead.PainFoodWaste,
		lead.PainQualityInconsistency, lead.PainTimePressure,
		lead.PainSupplierQuality, lead.PainUnreliableDelivery,
		lead.PainPoorService, lead.PainNotes, lead.UpdatedAt,
		lead.ID,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) List(limit, offset int) ([]*models.Lead, error) {
	query := `SELECT ` + leadColumns + `
		FROM leads ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		lead := &models.Lead{}
		if err := rows.Scan(
			&lead.ID, &lead.CompanyName, &lead.ContactName, &lead.Email, &lead.Phone, &lead.Status,
			&lead.BusinessType, &lead.KitchenSize, &lead.EmployeeCount, &lead.BranchCount, &lead.IsChain,
			&lead.EstimatedVolume,
			&lead.PainStaffShortage, &lead.PainHighCosts, &lead.PainFoodWaste,
			&lead.PainQualityInconsistency, &lead.PainTimePressure, &lead.PainSupplierQuality,
			&lead.PainUnreliableDelivery, &lead.PainPoorService, &lead.PainNotes,
			&lead.CreatedAt, &lead.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}
