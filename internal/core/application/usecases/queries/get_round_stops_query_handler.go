package queries

import (
	"context"
	"database/sql"
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/stop"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRoundStopsQueryHandler reads a round's stops with a single join over
// stops, shipments and companies.
//
// Example:
//
//	handler := NewGetRoundStopsQueryHandler(db)
//	query, _ := NewGetRoundStopsQuery(roundID)
//
//	stops, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, s := range stops {
//	    fmt.Printf("%d %s %s\n", s.OrderIndex, s.Kind, s.Label)
//	}
type GetRoundStopsQueryHandler struct {
	db *gorm.DB
}

// NewGetRoundStopsQueryHandler creates a handler for stop listing queries.
func NewGetRoundStopsQueryHandler(db *gorm.DB) GetRoundStopsQueryHandler {
	return GetRoundStopsQueryHandler{db: db}
}

// Handle returns the stops sorted by order index, or an
// errs.ObjectNotFoundError when the round does not exist.
func (h GetRoundStopsQueryHandler) Handle(
	ctx context.Context,
	query GetRoundStopsQuery,
) ([]GetRoundStopsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	roundID := query.RoundID()
	db := h.db.WithContext(ctx)

	var companyID uuid.NullUUID
	err := db.Raw(`SELECT company_id FROM rounds WHERE id = ?`, roundID.Bytes()).Row().Scan(&companyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("round", roundID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.Raw(`
		SELECT
			s.id,
			s.order_index,
			s.kind,
			s.shipment_id,
			COALESCE(sh.label, c.name, ''),
			COALESCE(sh.destination_lat, c.address_lat),
			COALESCE(sh.destination_lng, c.address_lng)
		FROM stops s
		JOIN rounds r ON r.id = s.round_id
		LEFT JOIN shipments sh ON sh.id = s.shipment_id
		LEFT JOIN companies c ON s.kind = ? AND c.id = r.company_id
		WHERE s.round_id = ?
		ORDER BY s.order_index
	`, stop.CompanyPickup.String(), roundID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]GetRoundStopsQueryResponse, 0)
	for rows.Next() {
		var (
			item       GetRoundStopsQueryResponse
			id         uuid.UUID
			kind       string
			shipmentID uuid.NullUUID
			lat, lng   sql.NullFloat64
		)

		if err = rows.Scan(&id, &item.OrderIndex, &kind, &shipmentID, &item.Label, &lat, &lng); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.Kind, err = stop.ParseKind(kind); err != nil {
			return nil, err
		}

		item.Ref = item.ID.String()
		if item.Kind == stop.CompanyPickup && companyID.Valid {
			company, idErr := kernel.UUIDFromBytes(companyID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			item.Ref = services.PickupRef(company).String()
		}

		if shipmentID.Valid {
			sid, idErr := kernel.UUIDFromBytes(shipmentID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			item.ShipmentID = &sid
		}

		if lat.Valid && lng.Valid {
			loc, locErr := kernel.NewLocation(lat.Float64, lng.Float64)
			if locErr != nil {
				return nil, locErr
			}
			item.Location = &loc
		}

		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
