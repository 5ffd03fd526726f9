package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomdyson/go-amee/internal/domain"
	"github.com/tomdyson/go-amee/internal/ports"
)

// ProfileItem points at a remote profile item. Every read goes to the server.
type ProfileItem struct {
	api ports.APIClient
	uri string
}

type profileItemEnvelope struct {
	ProfileItem *struct {
		Amount *domain.Amount `mapstructure:"amount"`
	} `mapstructure:"profileItem"`
}

func (i *ProfileItem) URI() string {
	return i.uri
}

// Get returns the decoded JSON representation of the item.
func (i *ProfileItem) Get(ctx context.Context) (any, error) {
	resp, err := i.api.Request(ctx, http.MethodGet, i.uri, domain.Payload{}, nil)
	if err != nil {
		return nil, fmt.Errorf("get profile item: %w", err)
	}

	return resp.Data, nil
}

func (i *ProfileItem) Amount(ctx context.Context) (domain.Amount, error) {
	data, err := i.Get(ctx)
	if err != nil {
		return domain.Amount{}, err
	}

	var body profileItemEnvelope
	if err := decodeData(data, &body); err != nil {
		return domain.Amount{}, fmt.Errorf("decode profile item: %w", err)
	}
	if body.ProfileItem == nil || body.ProfileItem.Amount == nil {
		return domain.Amount{}, errors.New("profile item has no amount")
	}

	return *body.ProfileItem.Amount, nil
}

// AmountInUnit returns the item's amount, failing unless it is expressed in unit.
func (i *ProfileItem) AmountInUnit(ctx context.Context, unit string) (float64, error) {
	amount, err := i.Amount(ctx)
	if err != nil {
		return 0, err
	}
	if amount.Unit != unit {
		return 0, &domain.UnitMismatchError{Expected: unit, Actual: amount.Unit}
	}

	return amount.Value, nil
}

// CO2 returns the item's carbon dioxide amount in kg per year.
func (i *ProfileItem) CO2(ctx context.Context) (float64, error) {
	return i.AmountInUnit(ctx, domain.UnitKgPerYear)
}
