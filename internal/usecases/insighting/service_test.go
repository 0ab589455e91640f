package insighting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func init() {
	log.SetupTestLogger()
}

type serviceFixture struct {
	campaigns *mocks.MockCampaignRepository
	insights  *mocks.MockInsightRepository
	service   *Service
}

func newFixture(t *testing.T, limit int) *serviceFixture {
	ctrl := gomock.NewController(t)
	campaigns := mocks.NewMockCampaignRepository(ctrl)
	insights := mocks.NewMockInsightRepository(ctrl)
	return &serviceFixture{
		campaigns: campaigns,
		insights:  insights,
		service:   NewService(campaigns, insights, ranking.NewEngine(5, nil), limit),
	}
}

func loadRequest() LoadRequest {
	return LoadRequest{
		Accounts: []domain.ResolvedAccount{{ID: "act_1", Platform: "meta"}},
		Bounds:   weekBounds(),
		Now:      time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC),
	}
}

func TestService_Load(t *testing.T) {
	f := newFixture(t, 1000)
	request := loadRequest()

	f.campaigns.EXPECT().
		ListByAccountIDs(gomock.Any(), []string{"act_1"}, 1001).
		Return([]*domain.Campaign{
			{ID: "cmp_a", AccountID: "act_1", Name: "A", Objective: "OUTCOME_SALES"},
			{ID: "cmp_b", AccountID: "act_1", Name: "B", Objective: "OUTCOME_LEADS"},
		}, nil)
	f.insights.EXPECT().
		ListByEntities(gomock.Any(), domain.EntityTypeCampaign, []string{"cmp_a", "cmp_b"}, "2024-05-01", "2024-05-07").
		Return([]*domain.InsightRecord{
			{EntityID: "cmp_a", Date: "2024-05-02", Spend: "100", Revenue: floatPtr(500)},
			{EntityID: "cmp_b", Date: "2024-05-03", Spend: "100", Revenue: floatPtr(100)},
			// fora do intervalo, deve ser descartada
			{EntityID: "cmp_b", Date: "2024-05-09", Spend: "999"},
		}, nil)

	snapshot, err := f.service.Load(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, 200.0, snapshot.Metrics.Spend)
	assert.Equal(t, 600.0, snapshot.Metrics.Revenue)
	assert.Equal(t, 3.0, snapshot.Metrics.ROAS)
	assert.False(t, snapshot.Truncated)
	assert.Equal(t, request.Accounts, snapshot.Accounts)
	assert.Equal(t, request.Now, snapshot.GeneratedAt)

	require.Len(t, snapshot.TopCampaigns, 2)
	assert.Equal(t, "cmp_a", snapshot.TopCampaigns[0].CampaignID)
	assert.Equal(t, "cmp_b", snapshot.TopCampaigns[1].CampaignID)
}

func TestService_Load_NoAccounts(t *testing.T) {
	f := newFixture(t, 1000)
	request := loadRequest()
	request.Accounts = []domain.ResolvedAccount{}

	snapshot, err := f.service.Load(context.Background(), request)

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.True(t, snapshot.IsEmpty())
	assert.Equal(t, weekBounds(), snapshot.Bounds)
}

func TestService_Load_NoCampaigns(t *testing.T) {
	f := newFixture(t, 1000)

	f.campaigns.EXPECT().ListByAccountIDs(gomock.Any(), gomock.Any(), 1001).Return([]*domain.Campaign{}, nil)

	snapshot, err := f.service.Load(context.Background(), loadRequest())

	require.NoError(t, err)
	assert.True(t, snapshot.IsEmpty())
}

func TestService_Load_Truncated(t *testing.T) {
	f := newFixture(t, 2)

	f.campaigns.EXPECT().
		ListByAccountIDs(gomock.Any(), gomock.Any(), 3).
		Return([]*domain.Campaign{{ID: "cmp_1"}, {ID: "cmp_2"}, {ID: "cmp_3"}}, nil)
	f.insights.EXPECT().
		ListByEntities(gomock.Any(), gomock.Any(), []string{"cmp_1", "cmp_2"}, gomock.Any(), gomock.Any()).
		Return([]*domain.InsightRecord{}, nil)

	snapshot, err := f.service.Load(context.Background(), loadRequest())

	require.NoError(t, err)
	assert.True(t, snapshot.Truncated)
}

func TestService_Load_ExactlyAtLimitIsNotTruncated(t *testing.T) {
	f := newFixture(t, 2)

	f.campaigns.EXPECT().
		ListByAccountIDs(gomock.Any(), gomock.Any(), 3).
		Return([]*domain.Campaign{{ID: "cmp_1"}, {ID: "cmp_2"}}, nil)
	f.insights.EXPECT().
		ListByEntities(gomock.Any(), gomock.Any(), []string{"cmp_1", "cmp_2"}, gomock.Any(), gomock.Any()).
		Return([]*domain.InsightRecord{{EntityID: "cmp_1", Date: "2024-05-02", Spend: "10"}}, nil)

	snapshot, err := f.service.Load(context.Background(), loadRequest())

	require.NoError(t, err)
	assert.False(t, snapshot.Truncated)
	assert.Equal(t, 10.0, snapshot.Metrics.Spend)
}

func TestService_Load_FetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(f *serviceFixture)
		sentinel error
	}{
		{
			name: "falha nas campanhas",
			setup: func(f *serviceFixture) {
				f.campaigns.EXPECT().ListByAccountIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			sentinel: domain.ErrCampaignsFetch,
		},
		{
			name: "falha nos insights",
			setup: func(f *serviceFixture) {
				f.campaigns.EXPECT().ListByAccountIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.Campaign{{ID: "cmp_1"}}, nil)
				f.insights.EXPECT().ListByEntities(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			sentinel: domain.ErrInsightsFetch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1000)
			tt.setup(f)

			snapshot, err := f.service.Load(context.Background(), loadRequest())

			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.ErrorKindFetch))
			assert.ErrorIs(t, err, tt.sentinel)
			require.NotNil(t, snapshot)
			assert.True(t, snapshot.IsEmpty())
			assert.NotNil(t, snapshot.TopCampaigns)
		})
	}
}
