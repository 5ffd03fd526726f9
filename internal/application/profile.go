package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/tomdyson/go-amee/internal/domain"
)

// Profile is a remote AMEE profile. Its UID is cleared once deleted and the
// handle refuses every further operation.
type Profile struct {
	account *Account

	mu  sync.Mutex
	uid string
}

type profileItemsEnvelope struct {
	ProfileItems []struct {
		URI string `mapstructure:"uri"`
	} `mapstructure:"profileItems"`
}

func (p *Profile) UID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.uid
}

func (p *Profile) Deleted() bool {
	return p.UID() == ""
}

func (p *Profile) Delete(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.uid == "" {
		return domain.ErrProfileDeleted
	}
	if err := p.account.DeleteProfile(ctx, p.uid); err != nil {
		return err
	}
	p.uid = ""

	return nil
}

// CreateItem resolves choices to a data item and records values against it.
func (p *Profile) CreateItem(ctx context.Context, categoryPath string, choices domain.Choices, values domain.Values) (*ProfileItem, error) {
	uid, err := p.liveUID()
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePath(categoryPath); err != nil {
		return nil, err
	}

	dataItemUID, err := p.resolveDataItem(ctx, categoryPath, choices)
	if err != nil {
		return nil, err
	}

	params := domain.Values{domain.DataItemUIDField: dataItemUID}.Merge(values)
	resp, err := p.account.api.Request(ctx, http.MethodPost, "/profiles/"+uid+categoryPath, domain.FormPayload(params), nil)
	if err != nil {
		return nil, fmt.Errorf("create profile item %s: %w", categoryPath, err)
	}
	if !resp.Created() {
		return nil, fmt.Errorf("create profile item %s: server returned no location", categoryPath)
	}

	return p.account.Item(resp.Location), nil
}

// CreateItems submits every item in one batch request, which the server
// applies atomically. All drilldowns are resolved first; if any of them fails
// nothing is sent.
func (p *Profile) CreateItems(ctx context.Context, items []domain.ItemSpec, common domain.Values) ([]*ProfileItem, error) {
	uid, err := p.liveUID()
	if err != nil {
		return nil, err
	}

	var result *multierror.Error
	entries := make([]domain.Values, 0, len(items))
	for i, item := range items {
		if err := domain.ValidatePath(item.Path); err != nil {
			result = multierror.Append(result, fmt.Errorf("item %d: %w", i, err))
			continue
		}

		dataItemUID, err := p.resolveDataItem(ctx, item.Path, item.Choices)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("item %d (%s): %w", i, item.Path, err))
			continue
		}

		entries = append(entries, common.Merge(domain.Values{domain.DataItemUIDField: dataItemUID}, item.Values))
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("resolve profile items: %w", err)
	}

	body, err := json.Marshal(map[string]any{"profileItems": entries})
	if err != nil {
		return nil, fmt.Errorf("encode profile items: %w", err)
	}

	resp, err := p.account.api.Request(ctx, http.MethodPost, "/profiles/"+uid, domain.JSONPayload(body), nil)
	if err != nil {
		return nil, fmt.Errorf("create profile items: %w", err)
	}

	var created profileItemsEnvelope
	if err := decodeData(resp.Data, &created); err != nil {
		return nil, fmt.Errorf("decode created profile items: %w", err)
	}

	if len(created.ProfileItems) != len(entries) {
		return nil, fmt.Errorf("%w: submitted %d, server returned %d", domain.ErrBatchMismatch, len(entries), len(created.ProfileItems))
	}

	profileItems := make([]*ProfileItem, 0, len(created.ProfileItems))
	for i, entry := range created.ProfileItems {
		if entry.URI == "" {
			return nil, fmt.Errorf("%w: item %d has no uri", domain.ErrBatchMismatch, i)
		}
		profileItems = append(profileItems, p.account.Item(entry.URI))
	}

	return profileItems, nil
}

func (p *Profile) liveUID() (string, error) {
	uid := p.UID()
	if uid == "" {
		return "", domain.ErrProfileGone
	}

	return uid, nil
}

func (p *Profile) resolveDataItem(ctx context.Context, categoryPath string, choices domain.Choices) (string, error) {
	result, err := p.account.drill.Drill(ctx, categoryPath, choices, true)
	if err != nil {
		return "", err
	}
	if !result.Resolved() {
		return "", &domain.IncompleteDrilldownError{Attribute: result.Next.Name}
	}
	if result.UID == "" {
		return "", errors.New("drill returned an empty data item uid")
	}

	return result.UID, nil
}
