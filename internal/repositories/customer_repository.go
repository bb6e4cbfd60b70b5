package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"freshsales/internal/models"
)

type CustomerRepository struct {
	db dbtx
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &CustomerRepository{db: db}
}

func newCustomerRepositoryTx(tx *sql.Tx) *CustomerRepository {
	return &CustomerRepository{db: tx}
}

const customerColumns = `
	id, company_name, status, original_lead_id,
	business_type, kitchen_size, employee_count, branch_count, is_chain,
	estimated_volume,
	pain_staff_shortage, pain_high_costs, pain_food_waste,
	pain_quality_inconsistency, pain_time_pressure, pain_supplier_quality,
	pain_unreliable_delivery, pain_poor_service, pain_notes,
	created_at
`

func (r *CustomerRepository) Create(customer *models.Customer) (int64, error) {
	const query = `
		INSERT INTO customers
			(company_name, status, original_lead_id,
			 business_type, kitchen_size, employee_count, branch_count, is_chain,
			 estimated_volume,
			 pain_staff_shortage, pain_high_costs, pain_food_waste,
			 pain_quality_inconsistency, pain_time_pressure, pain_supplier_quality,
			 pain_unreliable_delivery, pain_poor_service, pain_notes,
			 created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
		        $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(
		query,
		customer.CompanyName, customer.Status, customer.OriginalLeadID,
		customer.BusinessType, customer.KitchenSize, customer.EmployeeCount,
		customer.BranchCount, customer.IsChain,
		customer.EstimatedVolume,
		customer.PainStaffShortage, customer.PainHighCosts, customer.PainFoodWaste,
		customer.PainQualityInconsistency, customer.PainTimePressure, customer.PainSupplierQuality,
		customer.PainUnreliableDelivery, customer.PainPoorService, customer.PainNotes,
		customer.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create customer: %w", err)
	}
	customer.ID = id
	return id, nil
}

func (r *CustomerRepository) GetByID(id int64) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	customer := &models.Customer{}
	err := r.db.QueryRow(query, id).Scan(
		&customer.ID, &customer.CompanyName, &customer.Status, &customer.OriginalLeadID,
		&customer.BusinessType, &customer.KitchenSize, &customer.EmployeeCount,
		&customer.BranchCount, &customer.IsChain,
		&customer.EstimatedVolume,
		&customer.PainStaffShortage, &customer.PainHighCosts, &customer.PainFoodWaste,
		&customer.PainQualityInconsistency, &customer.PainTimePressure, &customer.PainSupplierQuality,
		&customer.PainUnreliableDelivery, &customer.PainPoorService, &customer.PainNotes,
		&customer.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get customer by id: %w", err)
	}
	return customer, nil
}

func (r *CustomerRepository) Update(customer *models.Customer) error {
	const query = `
		UPDATE customers
		SET company_name=$1, status=$2, original_lead_id=$3,
		    business_type=$4, kitchen_size=$5, employee_count=$6, branch_count=$7,
		    is_chain=$8, estimated_volume=$9,
		    pain_staff_shortage=$10, pain_high_costs=$11, pain_food_waste=$12,
		    pain_quality_inconsistency=$13, pain_time_pressure=$14,
		    pain_supplier_quality=$15, pain_unreliable_delivery=$16,
		    pain_poor_service=$17, pain_notes=$18
		WHERE id=$19
	`
	_, err := r.db.Exec(
		query,
		customer.CompanyName, customer.Status, customer.OriginalLeadID,
		customer.BusinessType, customer.KitchenSize, customer.EmployeeCount, customer.BranchCount,
		customer.IsChain, customer.EstimatedVolume,
		customer.PainStaffShortage, customer.PainHighCosts, customer.PainFoodWaste,
		customer.PainQualityInconsistency, customer.PainTimePressure,
		customer.PainSupplierQuality, customer.PainUnreliableDelivery,
		customer.PainPoorService, customer.PainNotes,
		customer.ID,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) List(limit, offset int) ([]*models.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(
			&customer.ID, &customer.CompanyName, &customer.Status, &customer.OriginalLeadID,
			&customer.BusinessType, &customer.KitchenSize, &customer.EmployeeCount,
			&customer.BranchCount, &customer.IsChain,
			&customer.EstimatedVolume,
			&customer.PainStaffShortage, &customer.PainHighCosts, &customer.PainFoodWaste,
			&customer.PainQualityInconsistency, &customer.PainTimePressure, &customer.PainSupplierQuality,
			&customer.PainUnreliableDelivery, &customer.PainPoorService, &customer.PainNotes,
			&customer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}
