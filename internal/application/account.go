package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/tomdyson/go-amee/internal/domain"
	"github.com/tomdyson/go-amee/internal/ports"
)

// Account is the root of the AMEE object model.
type Account struct {
	api   ports.APIClient
	drill Driller
}

// NewAccount builds an account whose drilldowns go through drill, normally a
// *DrillCache wrapping a *Resolver for the same client.
func NewAccount(api ports.APIClient, drill Driller) *Account {
	if drill == nil {
		drill = NewResolver(api)
	}

	return &Account{api: api, drill: drill}
}

type profileEnvelope struct {
	Profile struct {
		UID string `mapstructure:"uid"`
	} `mapstructure:"profile"`
}

type profilesEnvelope struct {
	Profiles []struct {
		UID string `mapstructure:"uid"`
	} `mapstructure:"profiles"`
}

func (a *Account) CreateProfile(ctx context.Context) (*Profile, error) {
	resp, err := a.api.Request(ctx, http.MethodPost, "/profiles", domain.FormPayload(domain.Values{"profile": "true"}), nil)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	uid, err := createdProfileUID(resp)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return a.Profile(uid), nil
}

func (a *Account) Profiles(ctx context.Context) ([]*Profile, error) {
	resp, err := a.api.Request(ctx, http.MethodGet, "/profiles", domain.Payload{}, nil)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	var body profilesEnvelope
	if err := decodeData(resp.Data, &body); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	profiles := make([]*Profile, 0, len(body.Profiles))
	for _, entry := range body.Profiles {
		if entry.UID == "" {
			continue
		}
		profiles = append(profiles, a.Profile(entry.UID))
	}

	return profiles, nil
}

func (a *Account) DeleteProfile(ctx context.Context, uid string) error {
	if uid == "" {
		return errors.New("profile uid is required")
	}

	if _, err := a.api.Request(ctx, http.MethodDelete, "/profiles/"+uid, domain.Payload{}, nil); err != nil {
		return fmt.Errorf("delete profile %s: %w", uid, err)
	}

	return nil
}

// Profile returns a handle for an existing profile without contacting the server.
func (a *Account) Profile(uid string) *Profile {
	return &Profile{account: a, uid: uid}
}

// Item returns a handle for an existing profile item URI.
func (a *Account) Item(uri string) *ProfileItem {
	return &ProfileItem{api: a.api, uri: uri}
}

// Drill runs one drilldown step through the account's drill cache.
func (a *Account) Drill(ctx context.Context, categoryPath string, choices domain.Choices, complete bool) (domain.DrillResult, error) {
	return a.drill.Drill(ctx, categoryPath, choices, complete)
}

func createdProfileUID(resp domain.Response) (string, error) {
	if resp.Created() {
		location, err := url.Parse(resp.Location)
		if err != nil {
			return "", fmt.Errorf("parse profile location: %w", err)
		}
		uid := path.Base(location.Path)
		if uid == "" || uid == "/" || uid == "." {
			return "", fmt.Errorf("profile location %q has no uid", resp.Location)
		}
		return uid, nil
	}

	var body profileEnvelope
	if err := decodeData(resp.Data, &body); err != nil {
		return "", fmt.Errorf("decode profile: %w", err)
	}
	if body.Profile.UID == "" {
		return "", errors.New("response missing profile uid")
	}

	return body.Profile.UID, nil
}
