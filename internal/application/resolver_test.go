package application

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tomdyson/go-amee/internal/domain"
	"github.com/tomdyson/go-amee/internal/ports/mocks"
)

func TestResolverDrill(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     any
		complete bool
		want     domain.DrillResult
		wantErr  error
	}{
		{
			name:     "terminal uid resolves",
			data:     drillData("uid", "abc123"),
			complete: true,
			want:     domain.Resolved("abc123"),
		},
		{
			name:    "terminal uid without candidates",
			data:    drillData("uid"),
			wantErr: domain.ErrNoChoices,
		},
		{
			name:     "outstanding choice with complete",
			data:     drillData("country", "UK", "US"),
			complete: true,
			wantErr:  domain.ErrIncompleteDrilldown,
		},
		{
			name: "outstanding choice returns next",
			data: drillData("country", "UK", "US"),
			want: domain.Next("country", []string{"UK", "US"}),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			api := mocks.NewMockAPIClient(t)
			api.EXPECT().
				Request(mockAnyContext(), http.MethodGet, "/data/home/energy/quantity/drill?type=gas", domain.Payload{}, http.Header(nil)).
				Return(domain.Response{Data: tc.data}, nil).
				Once()

			got, err := NewResolver(api).Drill(context.Background(), "/home/energy/quantity", domain.Choices{"type": "gas"}, tc.complete)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolverIncompleteNamesMissingAttribute(t *testing.T) {
	t.Parallel()

	api := mocks.NewMockAPIClient(t)
	api.EXPECT().Request(mockAnyContext(), http.MethodGet, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Response{Data: drillData("country", "UK", "US")}, nil)

	_, err := NewResolver(api).Drill(context.Background(), "/business/energy/electricity", nil, true)

	var incomplete *domain.IncompleteDrilldownError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, "country", incomplete.Attribute)
}

func TestResolverRejectsRelativePathWithoutRequest(t *testing.T) {
	t.Parallel()

	api := mocks.NewMockAPIClient(t)

	_, err := NewResolver(api).Drill(context.Background(), "home/energy", nil, false)
	require.ErrorIs(t, err, domain.ErrInvalidPath)
}

func TestResolverRejectsMalformedResponse(t *testing.T) {
	t.Parallel()

	api := mocks.NewMockAPIClient(t)
	api.EXPECT().Request(mockAnyContext(), http.MethodGet, "/data/home/drill?", mock.Anything, mock.Anything).
		Return(domain.Response{Data: map[string]any{"unexpected": true}}, nil)

	_, err := NewResolver(api).Drill(context.Background(), "/home", domain.Choices{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing choices")
}

func TestResolverPropagatesAPIErrors(t *testing.T) {
	t.Parallel()

	apiErr := &domain.APIError{StatusCode: http.StatusInternalServerError, Method: http.MethodGet, Path: "/data/home/drill?"}
	api := mocks.NewMockAPIClient(t)
	api.EXPECT().Request(mockAnyContext(), mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Response{}, apiErr)

	_, err := NewResolver(api).Drill(context.Background(), "/home", nil, false)
	require.ErrorIs(t, err, domain.ErrAPI)
}
