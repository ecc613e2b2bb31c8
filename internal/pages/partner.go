package pages

import (
	"context"
	"net/url"
	"time"

	"github.com/angelmondragon/shopdash/internal/deliveries"
	"github.com/angelmondragon/shopdash/pkg/auth"
	"github.com/angelmondragon/shopdash/pkg/config"
	"github.com/angelmondragon/shopdash/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

type PartnerParams struct {
	Deliveries deliveries.Service
	JWT        config.PartnerJWTConfig
	Now        func() time.Time
}

// Partner serves the delivery partner screen. It works without a shop
// session; the partner token scopes every call to the batches assigned to
// the partner's phone.
type Partner struct {
	params PartnerParams
	now    func() time.Time
}

func NewPartner(params PartnerParams) *Partner {
	return &Partner{params: params, now: nowFunc(params.Now)}
}

type PartnerLogin struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type PartnerSession struct {
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login finds the partner by phone. A phone with no assigned batch cannot
// sign in.
func (p *Partner) Login(ctx context.Context, input PartnerLogin) (*PartnerSession, error) {
	phone := auth.NormalizePhone(input.Phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required").
			WithDetails(map[string]any{"field": "phone"})
	}
	mine, err := p.assigned(ctx, phone)
	if err != nil {
		return nil, err
	}
	if len(mine) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No deliveries found for this phone number")
	}

	name := mine[0].DeliveryPartner.Name
	shopID := mine[0].ShopID
	for _, b := range mine[1:] {
		if b.ShopID != shopID {
			shopID = ""
			break
		}
	}
	now := p.now()
	token, err := auth.MintPartnerToken(p.params.JWT, now, auth.PartnerTokenPayload{Phone: phone, Name: name, ShopID: shopID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue partner token")
	}
	return &PartnerSession{Token: token, Name: name, Phone: phone, ExpiresAt: now.Add(p.params.JWT.TTL())}, nil
}

type PartnerCounts struct {
	Routes int `json:"routes"`
	Active int `json:"active"`
	Done   int `json:"done"`
}

type PartnerView struct {
	Partner PartnerSession `json:"partner"`
	Routes  []BatchView    `json:"routes"`
	Counts  PartnerCounts  `json:"counts"`
}

func (p *Partner) Routes(ctx context.Context, claims *auth.PartnerClaims) (*PartnerView, error) {
	if claims == nil || claims.Phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "partner token required")
	}
	mine, err := p.assigned(ctx, claims.Phone)
	if err != nil {
		return nil, err
	}
	view := &PartnerView{
		Partner: PartnerSession{Name: claims.Name, Phone: claims.Phone},
		Routes:  make([]BatchView, 0, len(mine)),
	}
	if claims.ExpiresAt != nil {
		view.Partner.ExpiresAt = claims.ExpiresAt.Time
	}
	for _, batch := range mine {
		view.Routes = append(view.Routes, NewBatchView(batch))
		view.Counts.Routes++
		switch phase := deliveries.Phase(batch.Status); {
		case phase == deliveries.PhaseDelivered:
			view.Counts.Done++
		case phase.Active():
			view.Counts.Active++
		}
	}
	return view, nil
}

func (p *Partner) Pickup(ctx context.Context, claims *auth.PartnerClaims, id string) (*BatchView, error) {
	if _, err := p.owned(ctx, claims, id); err != nil {
		return nil, err
	}
	return p.transition(ctx, id, enums.DeliveryStatusPickedUp)
}

// MarkStop checks the stop locally first so an out of order tap never reaches
// the backend, then reports the stops as they stand after the change.
func (p *Partner) MarkStop(ctx context.Context, claims *auth.PartnerClaims, id string, seq int) (*BatchView, error) {
	batch, err := p.owned(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	stops, err := deliveries.MarkStopDelivered(batch.RouteStops, seq)
	if err != nil {
		return nil, err
	}
	updated, err := p.params.Deliveries.UpdateStopStatus(ctx, id, seq)
	if err != nil {
		return nil, err
	}
	updated.RouteStops = stops
	view := NewBatchView(*updated)
	return &view, nil
}

func (p *Partner) Deliver(ctx context.Context, claims *auth.PartnerClaims, id string) (*BatchView, error) {
	batch, err := p.owned(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if !deliveries.CanComplete(*batch) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "all stops must be delivered first").
			WithDetails(map[string]any{"batch_id": id})
	}
	return p.transition(ctx, id, enums.DeliveryStatusDelivered)
}

func (p *Partner) transition(ctx context.Context, id string, to enums.DeliveryStatus) (*BatchView, error) {
	batch, err := p.params.Deliveries.UpdateStatus(ctx, id, to, enums.ActorDeliveryPartner)
	if err != nil {
		return nil, err
	}
	view := NewBatchView(*batch)
	return &view, nil
}

// owned loads the batch and rejects it unless it is assigned to the token's
// phone.
func (p *Partner) owned(ctx context.Context, claims *auth.PartnerClaims, id string) (*models.DeliveryBatch, error) {
	if claims == nil || claims.Phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "partner token required")
	}
	batch, err := p.params.Deliveries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !assignedTo(*batch, claims.Phone) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "batch is not assigned to this partner")
	}
	return batch, nil
}

func (p *Partner) assigned(ctx context.Context, phone string) ([]models.DeliveryBatch, error) {
	batches, err := p.params.Deliveries.List(ctx, url.Values{"limit": {listAllLimit}})
	if err != nil {
		return nil, err
	}
	out := make([]models.DeliveryBatch, 0, len(batches))
	for _, batch := range batches {
		if assignedTo(batch, phone) {
			out = append(out, batch)
		}
	}
	return out, nil
}

func assignedTo(batch models.DeliveryBatch, phone string) bool {
	if batch.DeliveryPartner == nil {
		return false
	}
	assigned := auth.NormalizePhone(batch.DeliveryPartner.Phone)
	return assigned != "" && assigned == auth.NormalizePhone(phone)
}
