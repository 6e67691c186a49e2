// Package companyrepo reads company addresses for pickup stops.
package companyrepo

import (
	"context"
	"errors"

	"roundplanner/internal/adapters/out/postgres/pgutil"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyDTO is the row of the companies table.
type CompanyDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null"`
	AddressLat *float64
	AddressLng *float64
}

// TableName overrides GORM's default naming convention to use "companies".
func (CompanyDTO) TableName() string {
	return "companies"
}

// GormCompanyDirectory implements ports.CompanyDirectory using GORM.
type GormCompanyDirectory struct {
	db *gorm.DB
}

func NewGormCompanyDirectory(db *gorm.DB) *GormCompanyDirectory {
	return &GormCompanyDirectory{db: db}
}

// GetAddress returns the company's pickup location, or nil when the company
// has no address on file.
func (d *GormCompanyDirectory) GetAddress(ctx context.Context, companyID kernel.UUID) (*kernel.Location, error) {
	if err := companyID.Validate(); err != nil {
		return nil, err
	}

	var dto CompanyDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", companyID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("company", companyID.String())
		}
		return nil, err
	}

	return pgutil.Location(dto.AddressLat, dto.AddressLng)
}
