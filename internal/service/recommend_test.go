package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-ai/backend/internal/models"
)

func newRecommendationFixture(t *testing.T) (*TrackingService, *RecommendationService) {
	t.Helper()
	db := setupTestDB(t)
	tracking := NewTrackingService(db)
	return tracking, NewRecommendationService(tracking)
}

func TestRecommendColdStart(t *testing.T) {
	_, svc := newRecommendationFixture(t)

	rec := svc.Recommend(context.Background(), "fresh-session")
	assert.Equal(t, []models.FeatureType{
		models.FeatureTextToImage,
		models.FeatureImageToText,
		models.FeatureTextToText,
	}, rec.RecommendedFeatures)
	assert.Equal(t, "Start exploring our AI features!", rec.Message)
	assert.Empty(t, rec.Insights)
	assert.Nil(t, rec.MostUsedFeature)
	assert.Zero(t, rec.TotalActions)
}

func TestRecommendComplementaryFeatures(t *testing.T) {
	tracking, svc := newRecommendationFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.True(t, tracking.Record(ctx, "session-1", models.FeatureTextToImage, "generate", nil))
	}
	require.True(t, tracking.Record(ctx, "session-1", models.FeatureTextToText, "chat", nil))

	rec := svc.Recommend(ctx, "session-1")
	require.NotNil(t, rec.MostUsedFeature)
	assert.Equal(t, models.FeatureTextToImage, *rec.MostUsedFeature)
	assert.Equal(t, []models.FeatureType{
		models.FeatureImageEnhance,
		models.FeatureOutpainting,
		models.FeatureImageToText,
	}, rec.RecommendedFeatures)
	assert.Equal(t, 4, rec.TotalActions)
	assert.Equal(t, 2, rec.UniqueFeatures)
	assert.Empty(t, rec.Message)
}

func TestRecommendFallbackForUnknownFeature(t *testing.T) {
	tracking, svc := newRecommendationFixture(t)
	ctx := context.Background()

	require.True(t, tracking.Record(ctx, "session-1", models.FeatureType("experimental-mode"), "run", nil))

	rec := svc.Recommend(ctx, "session-1")
	assert.Equal(t, []models.FeatureType{
		models.FeatureTextToImage,
		models.FeatureImageEnhance,
		models.FeatureOutpainting,
	}, rec.RecommendedFeatures)
}

func TestRecommendActionInsightBoundary(t *testing.T) {
	tracking, svc := newRecommendationFixture(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.True(t, tracking.Record(ctx, "session-1", models.FeatureTextToText, "chat", nil))
	}

	rec := svc.Recommend(ctx, "session-1")
	assert.NotContains(t, rec.Insights, "You've performed 10 actions!",
		"exactly ten actions is below the threshold")

	require.True(t, tracking.Record(ctx, "session-1", models.FeatureTextToText, "chat", nil))

	rec = svc.Recommend(ctx, "session-1")
	assert.Contains(t, rec.Insights, "You've performed 11 actions!")
}

func TestRecommendVarietyInsight(t *testing.T) {
	tracking, svc := newRecommendationFixture(t)
	ctx := context.Background()

	features := []models.FeatureType{
		models.FeatureTextToText,
		models.FeatureTextToImage,
		models.FeatureImageToText,
		models.FeatureImageEnhance,
		models.FeatureOutpainting,
	}
	for _, f := range features {
		require.True(t, tracking.Record(ctx, "session-1", f, "use", nil))
	}

	rec := svc.Recommend(ctx, "session-1")
	assert.Contains(t, rec.Insights, "You've explored 5 different features!")
}

func TestRecommendFavoriteFeatureInsight(t *testing.T) {
	tracking, svc := newRecommendationFixture(t)
	ctx := context.Background()

	require.True(t, tracking.Record(ctx, "session-1", models.FeatureImageEnhance, "upscale", nil))

	rec := svc.Recommend(ctx, "session-1")
	require.NotEmpty(t, rec.Insights)
	assert.Equal(t, "Your favorite feature is Image Enhance", rec.Insights[len(rec.Insights)-1])
}

func TestRecommendScenario(t *testing.T) {
	tracking, svc := newRecommendationFixture(t)
	ctx := context.Background()

	// A heavy image-generation user who dabbled elsewhere
	usage := []struct {
		feature models.FeatureType
		count   int
	}{
		{models.FeatureTextToImage, 6},
		{models.FeatureTextToText, 3},
		{models.FeatureImageToText, 2},
		{models.FeatureImageEnhance, 1},
	}
	for _, u := range usage {
		for i := 0; i < u.count; i++ {
			require.True(t, tracking.Record(ctx, "session-1", u.feature, "use", nil))
		}
	}

	rec := svc.Recommend(ctx, "session-1")
	require.NotNil(t, rec.MostUsedFeature)
	assert.Equal(t, models.FeatureTextToImage, *rec.MostUsedFeature)
	assert.Equal(t, 12, rec.TotalActions)
	assert.Equal(t, 4, rec.UniqueFeatures)
	assert.Contains(t, rec.Insights, "You've performed 12 actions!")
	assert.Contains(t, rec.Insights, "Your favorite feature is Text To Image")
	assert.NotContains(t, rec.Insights, "You've explored 4 different features!")
}
