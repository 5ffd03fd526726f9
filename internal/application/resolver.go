package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomdyson/go-amee/internal/domain"
	"github.com/tomdyson/go-amee/internal/ports"
)

// Driller resolves drilldown choices for a data category path.
type Driller interface {
	Drill(ctx context.Context, path string, choices domain.Choices, complete bool) (domain.DrillResult, error)
}

// Resolver performs a single drill request per call. Callers that want to
// walk the tree step by step re-invoke it with an extended choice set.
type Resolver struct {
	api ports.APIClient
}

var _ Driller = (*Resolver)(nil)

func NewResolver(api ports.APIClient) *Resolver {
	return &Resolver{api: api}
}

type drillResponse struct {
	Choices *drillChoices `mapstructure:"choices"`
}

type drillChoices struct {
	Name string `mapstructure:"name"`
	// Value always duplicates Name; only Name is kept.
	Choices []struct {
		Name  string `mapstructure:"name"`
		Value string `mapstructure:"value"`
	} `mapstructure:"choices"`
}

func (r *Resolver) Drill(ctx context.Context, path string, choices domain.Choices, complete bool) (domain.DrillResult, error) {
	if err := domain.ValidatePath(path); err != nil {
		return domain.DrillResult{}, err
	}

	resp, err := r.api.Request(ctx, http.MethodGet, "/data"+path+"/drill?"+choices.Encode(), domain.Payload{}, nil)
	if err != nil {
		return domain.DrillResult{}, fmt.Errorf("drill %s: %w", path, err)
	}

	var body drillResponse
	if err := decodeData(resp.Data, &body); err != nil {
		return domain.DrillResult{}, fmt.Errorf("decode drill response: %w", err)
	}
	if body.Choices == nil {
		return domain.DrillResult{}, errors.New("decode drill response: missing choices")
	}

	names := make([]string, 0, len(body.Choices.Choices))
	for _, choice := range body.Choices.Choices {
		names = append(names, choice.Name)
	}

	if body.Choices.Name == domain.UIDChoiceName {
		if len(names) == 0 {
			return domain.DrillResult{}, fmt.Errorf("drill %s: %w", path, domain.ErrNoChoices)
		}
		return domain.Resolved(names[0]), nil
	}

	if complete {
		return domain.DrillResult{}, &domain.IncompleteDrilldownError{Attribute: body.Choices.Name}
	}

	return domain.Next(body.Choices.Name, names), nil
}
