package repositories

import (
	"database/sql"
	"fmt"
	"log"

	"freshsales/internal/models"
)

type OpportunityRepository struct {
	db dbtx
}

func NewOpportunityRepository(db *sql.DB) *OpportunityRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &OpportunityRepository{db: db}
}

func newOpportunityRepositoryTx(tx *sql.Tx) *OpportunityRepository {
	return &OpportunityRepository{db: tx}
}

const opportunityColumns = `
	id, name, description, stage, probability, expected_value,
	expected_close_date, stage_changed_at, customer_id, lead_id, created_at
`

// Create inserts the opportunity and its initial activities, returning the
// generated id.
func (r *OpportunityRepository) Create(opp *models.Opportunity) (int64, error) {
	const query = `
		INSERT INTO opportunities
			(name, description, stage, probability, expected_value,
			 expected_close_date, stage_changed_at, customer_id, lead_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(
		query,
		opp.Name,
		opp.Description,
		string(opp.Stage),
		opp.Probability,
		opp.ExpectedValue,
		opp.ExpectedCloseDate,
		opp.StageChangedAt,
		opp.CustomerID,
		opp.LeadID,
		opp.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create opportunity: %w", err)
	}
	opp.ID = id
	if err := r.insertNewActivities(opp); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *OpportunityRepository) GetByID(id int64) (*models.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id=$1`
	opp := &models.Opportunity{}
	err := r.db.QueryRow(query, id).Scan(
		&opp.ID,
		&opp.Name,
		&opp.Description,
		&opp.Stage,
		&opp.Probability,
		&opp.ExpectedValue,
		&opp.ExpectedCloseDate,
		&opp.StageChangedAt,
		&opp.CustomerID,
		&opp.LeadID,
		&opp.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get opportunity by id: %w", err)
	}
	if err := r.loadActivities(opp); err != nil {
		return nil, err
	}
	return opp, nil
}

// Update persists the aggregate fields and inserts activities appended since
// the last load (those with a zero id). Stored activities are never touched.
func (r *OpportunityRepository) Update(opp *models.Opportunity) error {
	const query = `
		UPDATE opportunities
		SET name=$1, description=$2, stage=$3, probability=$4, expected_value=$5,
		    expected_close_date=$6, stage_changed_at=$7, customer_id=$8, lead_id=$9
		WHERE id=$10
	`
	_, err := r.db.Exec(
		query,
		opp.Name,
		opp.Description,
		string(opp.Stage),
		opp.Probability,
		opp.ExpectedValue,
		opp.ExpectedCloseDate,
		opp.StageChangedAt,
		opp.CustomerID,
		opp.LeadID,
		opp.ID,
	)
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	return r.insertNewActivities(opp)
}

func (r *OpportunityRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM opportunities WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("opportunity with id=%d not found", id)
	}
	return nil
}

func (r *OpportunityRepository) List(limit, offset int) ([]*models.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + `
		FROM opportunities ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryMany(query, limit, offset)
}

func (r *OpportunityRepository) ListByStage(stage models.Stage) ([]*models.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + `
		FROM opportunities WHERE stage=$1 ORDER BY created_at DESC`
	return r.queryMany(query, string(stage))
}

// ListOpen returns every opportunity still in a non-closed stage.
func (r *OpportunityRepository) ListOpen() ([]*models.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE stage NOT IN ($1, $2)
		ORDER BY created_at DESC`
	return r.queryMany(query, string(models.StageClosedWon), string(models.StageClosedLost))
}

func (r *OpportunityRepository) queryMany(query string, args ...any) ([]*models.Opportunity, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()

	var opps []*models.Opportunity
	for rows.Next() {
		opp := &models.Opportunity{}
		if err := rows.Scan(
			&opp.ID,
			&opp.Name,
			&opp.Description,
			&opp.Stage,
			&opp.Probability,
			&opp.ExpectedValue,
			&opp.ExpectedCloseDate,
			&opp.StageChangedAt,
			&opp.CustomerID,
			&opp.LeadID,
			&opp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan opportunity: %w", err)
		}
		opps = append(opps, opp)
	}
	return opps, rows.Err()
}

func (r *OpportunityRepository) loadActivities(opp *models.Opportunity) error {
	const query = `
		SELECT id, opportunity_id, type, title, created_at
		FROM opportunity_activities
		WHERE opportunity_id=$1
		ORDER BY id
	`
	rows, err := r.db.Query(query, opp.ID)
	if err != nil {
		return fmt.Errorf("load activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.OpportunityID, &a.Type, &a.Title, &a.CreatedAt); err != nil {
			return fmt.Errorf("scan activity: %w", err)
		}
		opp.Activities = append(opp.Activities, a)
	}
	return rows.Err()
}

func (r *OpportunityRepository) insertNewActivities(opp *models.Opportunity) error {
	const query = `
		INSERT INTO opportunity_activities (opportunity_id, type, title, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range opp.Activities {
		a := &opp.Activities[i]
		if a.ID != 0 {
			continue
		}
		a.OpportunityID = opp.ID
		if err := r.db.QueryRow(query, a.OpportunityID, a.Type, a.Title, a.CreatedAt).Scan(&a.ID); err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
	}
	return nil
}
