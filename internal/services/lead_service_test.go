package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshsales/internal/models"
	"freshsales/internal/repositories"
	"freshsales/internal/services"
)

func TestLeadServiceCreate(t *testing.T) {
	mem := repositories.NewMemory()
	svc := services.NewLeadService(mem.Leads())
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	lead := &models.Lead{CompanyName: "Brauhaus Eck"}
	require.NoError(t, svc.Create(lead))
	assert.NotZero(t, lead.ID)
	assert.Equal(t, models.LeadStatusNew, lead.Status)
	assert.Equal(t, now, lead.CreatedAt)

	err := svc.Create(&models.Lead{})
	require.ErrorIs(t, err, services.ErrInvalidArgument)
}

func TestLeadServiceConvertedLeadIsFrozen(t *testing.T) {
	mem := repositories.NewMemory()
	svc := services.NewLeadService(mem.Leads())

	lead := &models.Lead{CompanyName: "Frozen Foods", Status: models.LeadStatusConverted}
	id, err := mem.Leads().Create(lead)
	require.NoError(t, err)

	err = svc.Update(&models.Lead{ID: id, CompanyName: "Renamed"})
	require.ErrorIs(t, err, services.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "converted")

	stored, err := mem.Leads().GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Frozen Foods", stored.CompanyName)
}

func TestLeadServiceUpdate(t *testing.T) {
	mem := repositories.NewMemory()
	svc := services.NewLeadService(mem.Leads())

	lead := &models.Lead{CompanyName: "Old Name"}
	require.NoError(t, svc.Create(lead))
	created := lead.CreatedAt

	lead.CompanyName = "New Name"
	lead.Status = models.LeadStatusQualified
	require.NoError(t, svc.Update(lead))

	stored, err := svc.GetByID(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", stored.CompanyName)
	assert.Equal(t, models.LeadStatusQualified, stored.Status)
	assert.Equal(t, created, stored.CreatedAt, "creation time is immutable")

	err = svc.Update(&models.Lead{ID: 999, CompanyName: "Ghost"})
	require.ErrorIs(t, err, services.ErrNotFound)
}
