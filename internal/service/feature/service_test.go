package feature

import (
	"context"
	"errors"
	"testing"

	"github.com/novatech-uz/company-backend-go/internal/domain/feature"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeatureRepo struct {
	feature.FeatureRepository

	created   feature.Feature
	updated   bool
	createErr error
}

func (s *stubFeatureRepo) Create(_ context.Context, f feature.Feature) (feature.Feature, error) {
	if s.createErr != nil {
		return feature.Feature{}, s.createErr
	}
	f.ID = "0195b7a4-0000-7000-8000-0000000000d1"
	s.created = f
	return f, nil
}

func (s *stubFeatureRepo) Update(_ context.Context, id string, req feature.UpdateFeatureRequest) (feature.Feature, error) {
	s.updated = true
	return feature.Feature{ID: id}, nil
}

func (s *stubFeatureRepo) ListActive(context.Context) ([]feature.Feature, error) {
	return []feature.Feature{{Title: "Agile delivery", IsActive: true}}, nil
}

func TestCreate_Defaults(t *testing.T) {
	repo := &stubFeatureRepo{}

	_, err := NewFeatureService(repo).Create(context.Background(), feature.CreateFeatureRequest{
		Title:       "Agile delivery",
		Description: "Two week sprints with demos.",
		Benefits:    []string{"Fast feedback"},
	})

	require.NoError(t, err)
	assert.Equal(t, "fas fa-code", repo.created.Icon)
	assert.Equal(t, "development", repo.created.Category)
	assert.Equal(t, []string{"Fast feedback"}, repo.created.Benefits)
	assert.True(t, repo.created.IsActive)
}

func TestCreate_Inactive(t *testing.T) {
	repo := &stubFeatureRepo{}
	inactive := false

	_, err := NewFeatureService(repo).Create(context.Background(), feature.CreateFeatureRequest{
		Title:       "Legacy support",
		Description: "Maintenance of older systems.",
		Category:    "support",
		IsActive:    &inactive,
	})

	require.NoError(t, err)
	assert.False(t, repo.created.IsActive)
	assert.Equal(t, "support", repo.created.Category)
}

func TestCreate_Invalid(t *testing.T) {
	repo := &stubFeatureRepo{}

	_, err := NewFeatureService(repo).Create(context.Background(), feature.CreateFeatureRequest{
		Title:    "Agile delivery",
		Category: "sales",
		Benefits: []string{""},
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.GreaterOrEqual(t, len(verrs), 3)
	assert.Empty(t, repo.created.ID)
}

func TestCreate_WrapsRepositoryError(t *testing.T) {
	repo := &stubFeatureRepo{createErr: errors.New("connection refused")}

	_, err := NewFeatureService(repo).Create(context.Background(), feature.CreateFeatureRequest{
		Title:       "Agile delivery",
		Description: "Two week sprints with demos.",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create feature")
}

func TestUpdate_ValidatesFirst(t *testing.T) {
	repo := &stubFeatureRepo{}
	empty := ""

	_, err := NewFeatureService(repo).Update(context.Background(), "id-1", feature.UpdateFeatureRequest{Title: &empty})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.False(t, repo.updated)
}

func TestActive(t *testing.T) {
	list, err := NewFeatureService(&stubFeatureRepo{}).Active(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsActive)
}
