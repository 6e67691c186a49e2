// Package servers holds the HTTP contract of the round planner: the wire
// types, the server interface and its echo binding, and the OpenAPI document
// they follow.
package servers

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for NewRoundKind.
const (
	CompanyTrip      NewRoundKind = "company-trip"
	CompanyTripBatch NewRoundKind = "company-trip-batch"
	Individual       NewRoundKind = "individual"
)

// Defines values for StopKind.
const (
	ClientDelivery StopKind = "client-delivery"
	CompanyPickup  StopKind = "company-pickup"
)

// Defines values for MoveStopRequestDirection.
const (
	Down MoveStopRequestDirection = "down"
	Up   MoveStopRequestDirection = "up"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewRound defines model for NewRound.
type NewRound struct {
	CompanyId   *openapi_types.UUID  `json:"companyId,omitempty"`
	CourierId   *openapi_types.UUID  `json:"courierId,omitempty"`
	Date        openapi_types.Date   `json:"date"`
	Kind        NewRoundKind         `json:"kind" validate:"required,oneof=individual company-trip company-trip-batch"`
	ShipmentIds []openapi_types.UUID `json:"shipmentIds" validate:"required"`
}

// NewRoundKind defines model for NewRound.Kind.
type NewRoundKind string

// RoundCreated defines model for RoundCreated.
type RoundCreated struct {
	Id openapi_types.UUID `json:"id"`
}

// Stop defines model for Stop.
type Stop struct {
	Id         openapi_types.UUID  `json:"id"`
	Kind       StopKind            `json:"kind"`
	Label      string              `json:"label"`
	Lat        *float64            `json:"lat,omitempty"`
	Lng        *float64            `json:"lng,omitempty"`
	OrderIndex int                 `json:"orderIndex"`
	Ref        string              `json:"ref"`
	ShipmentId *openapi_types.UUID `json:"shipmentId,omitempty"`
}

// StopKind defines model for Stop.Kind.
type StopKind string

// MoveStopRequest defines model for MoveStopRequest.
type MoveStopRequest struct {
	Direction MoveStopRequestDirection `json:"direction" validate:"required,oneof=up down"`
}

// MoveStopRequestDirection defines model for MoveStopRequest.Direction.
type MoveStopRequestDirection string

// MoveStopResult defines model for MoveStopResult.
type MoveStopResult struct {
	Applied bool `json:"applied"`
}

// SetRoundStatusRequest defines model for SetRoundStatusRequest.
type SetRoundStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetRoundStatusResult defines model for SetRoundStatusResult.
type SetRoundStatusResult struct {
	CascadeApplied bool    `json:"cascadeApplied"`
	RoundUpdated   bool    `json:"roundUpdated"`
	Warning        *string `json:"warning,omitempty"`
}

// RouteSuggestion defines model for RouteSuggestion.
type RouteSuggestion struct {
	CandidateDistanceKm      *float64 `json:"candidateDistanceKm,omitempty"`
	CurrentDistanceKm        *float64 `json:"currentDistanceKm,omitempty"`
	EstimatedTotalDistanceKm *float64 `json:"estimatedTotalDistanceKm,omitempty"`
	Notes                    *string  `json:"notes,omitempty"`
	OrderedIds               []string `json:"orderedIds"`
}

// ApplyRouteRequest defines model for ApplyRouteRequest.
type ApplyRouteRequest struct {
	OrderedIds []string `json:"orderedIds" validate:"required,min=1,dive,required"`
}

// ApplyRouteResult defines model for ApplyRouteResult.
type ApplyRouteResult struct {
	Applied bool `json:"applied"`
}

// RoundId defines model for RoundId.
type RoundId = openapi_types.UUID
