package deliveries

import (
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
)

// BatchPhase is the semantic state shared by both status vocabularies.
type BatchPhase string

const (
	PhasePlanned   BatchPhase = "planned"
	PhaseReady     BatchPhase = "ready"
	PhasePickedUp  BatchPhase = "picked_up"
	PhaseInTransit BatchPhase = "in_transit"
	PhaseDelivered BatchPhase = "delivered"
	PhaseUnknown   BatchPhase = "unknown"
)

var phaseByStatus = map[enums.DeliveryStatus]BatchPhase{
	enums.DeliveryStatusPlanned:          PhasePlanned,
	enums.DeliveryStatusLegacyPending:    PhasePlanned,
	enums.DeliveryStatusReadyForPickup:   PhaseReady,
	enums.DeliveryStatusPickedUp:         PhasePickedUp,
	enums.DeliveryStatusInTransit:        PhaseInTransit,
	enums.DeliveryStatusLegacyInTransit:  PhaseInTransit,
	enums.DeliveryStatusLegacyInProgress: PhaseInTransit,
	enums.DeliveryStatusDelivered:        PhaseDelivered,
	enums.DeliveryStatusLegacyCompleted:  PhaseDelivered,
}

func Phase(status enums.DeliveryStatus) BatchPhase {
	if phase, ok := phaseByStatus[status]; ok {
		return phase
	}
	return PhaseUnknown
}

// Active reports whether the batch is still out on the road or waiting for
// one. Unknown statuses are not counted.
func (p BatchPhase) Active() bool {
	switch p {
	case PhasePlanned, PhaseReady, PhasePickedUp, PhaseInTransit:
		return true
	default:
		return false
	}
}

// Display is how a status renders in a badge.
type Display struct {
	Phase BatchPhase `json:"phase"`
	Label string     `json:"label"`
	Color string     `json:"color"`
}

const neutralColor = "zinc"

var displayByPhase = map[BatchPhase]Display{
	PhasePlanned:   {Phase: PhasePlanned, Label: "Planned", Color: "amber"},
	PhaseReady:     {Phase: PhaseReady, Label: "Ready for Pickup", Color: "purple"},
	PhasePickedUp:  {Phase: PhasePickedUp, Label: "Picked Up", Color: "blue"},
	PhaseInTransit: {Phase: PhaseInTransit, Label: "In Transit", Color: "cyan"},
	PhaseDelivered: {Phase: PhaseDelivered, Label: "Delivered", Color: "green"},
}

// StatusDisplay renders every status of a phase identically. Unknown values
// keep their raw text.
func StatusDisplay(status enums.DeliveryStatus) Display {
	if display, ok := displayByPhase[Phase(status)]; ok {
		return display
	}
	return Display{Phase: PhaseUnknown, Label: string(status), Color: neutralColor}
}

type edge struct {
	from BatchPhase
	to   enums.DeliveryStatus
}

// transitions lists every status change and the only actor allowed to make
// it. PICKED_UP -> IN_TRANSIT belongs to the backend.
var transitions = map[edge]enums.Actor{
	{PhasePlanned, enums.DeliveryStatusReadyForPickup}: enums.ActorShopOwner,
	{PhaseReady, enums.DeliveryStatusPickedUp}:         enums.ActorDeliveryPartner,
	{PhasePickedUp, enums.DeliveryStatusInTransit}:     enums.ActorSystem,
	{PhaseInTransit, enums.DeliveryStatusDelivered}:    enums.ActorDeliveryPartner,
}

// CheckTransition validates a status change before it is sent. A missing edge
// is a state conflict; an edge owned by another actor is forbidden.
func CheckTransition(from, to enums.DeliveryStatus, actor enums.Actor) error {
	details := map[string]any{"from": string(from), "to": string(to), "actor": string(actor)}
	if !actor.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid actor").WithDetails(details)
	}
	if Phase(from) == PhaseDelivered {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "delivered batches cannot change status").WithDetails(details)
	}
	owner, ok := transitions[edge{from: Phase(from), to: to}]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").WithDetails(details)
	}
	if owner != actor {
		return pkgerrors.New(pkgerrors.CodeForbidden, string(actor)+" cannot move a batch to "+string(to))
	}
	return nil
}
