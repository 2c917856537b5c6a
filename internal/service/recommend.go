package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lumina-ai/backend/internal/models"
)

// recentWindow caps how much history feeds a recommendation; suggestions
// follow recent behavior, not lifetime totals.
const recentWindow = 100

// complementary is the static adjacency table mapping each recognized
// feature to the features that pair well with it. Domain knowledge, not
// learned or configurable at runtime.
var complementary = map[models.FeatureType][]models.FeatureType{
	models.FeatureTextToImage:  {models.FeatureImageEnhance, models.FeatureOutpainting, models.FeatureImageToText},
	models.FeatureImageToText:  {models.FeatureTextToImage, models.FeatureTextToText, models.FeatureImageEnhance},
	models.FeatureTextToText:   {models.FeatureTextToImage, models.FeatureImageToText, models.FeatureVoiceToText},
	models.FeatureImageEnhance: {models.FeatureOutpainting, models.FeatureTextToImage, models.FeatureImageToText},
	models.FeatureOutpainting:  {models.FeatureImageEnhance, models.FeatureTextToImage, models.FeatureImageToText},
	models.FeatureVoiceToText:  {models.FeatureTextToText, models.FeatureTextToAudio, models.FeatureTextToImage},
	models.FeatureTextToAudio:  {models.FeatureVoiceToText, models.FeatureTextToText, models.FeatureTextToImage},
}

// coldStartFeatures is suggested to sessions with no history.
var coldStartFeatures = []models.FeatureType{
	models.FeatureTextToImage,
	models.FeatureImageToText,
	models.FeatureTextToText,
}

// fallbackFeatures is suggested when the most-used feature is not in the
// adjacency table.
var fallbackFeatures = []models.FeatureType{
	models.FeatureTextToImage,
	models.FeatureImageEnhance,
	models.FeatureOutpainting,
}

// Recommendation is a next-feature suggestion derived from recent usage.
type Recommendation struct {
	RecommendedFeatures []models.FeatureType `json:"recommended_features"`
	Insights            []string             `json:"insights"`
	MostUsedFeature     *models.FeatureType  `json:"most_used_feature"`
	TotalActions        int                  `json:"total_actions"`
	UniqueFeatures      int                  `json:"unique_features"`
	Message             string               `json:"message,omitempty"`
}

// RecommendationService derives next-feature suggestions from the
// interaction log via the static adjacency table.
type RecommendationService struct {
	tracking *TrackingService
	titler   cases.Caser
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(tracking *TrackingService) *RecommendationService {
	return &RecommendationService{
		tracking: tracking,
		titler:   cases.Title(language.English),
	}
}

// Recommend suggests up to three features based on the session's recent
// history. Errors degrade to the cold-start response.
func (s *RecommendationService) Recommend(ctx context.Context, sessionID string) Recommendation {
	history, err := s.tracking.History(ctx, sessionID, recentWindow)
	if err != nil {
		log.Printf("Error generating recommendations: %v", err)
		return coldStart()
	}
	if len(history) == 0 {
		return coldStart()
	}

	// Count occurrences preserving first-seen order across the
	// newest-first window; a stable sort then makes the most-used
	// tiebreak deterministic.
	counts := make(map[models.FeatureType]int, len(history))
	var order []models.FeatureType
	for _, entry := range history {
		if counts[entry.FeatureType] == 0 {
			order = append(order, entry.FeatureType)
		}
		counts[entry.FeatureType]++
	}

	mostUsed := order[0]
	for _, f := range order[1:] {
		if counts[f] > counts[mostUsed] {
			mostUsed = f
		}
	}

	recommended, ok := complementary[mostUsed]
	if !ok {
		recommended = fallbackFeatures
	}
	if len(recommended) > 3 {
		recommended = recommended[:3]
	}

	totalActions := len(history)
	uniqueFeatures := len(counts)

	insights := make([]string, 0, 3)
	if totalActions > 10 {
		insights = append(insights, fmt.Sprintf("You've performed %d actions!", totalActions))
	}
	if uniqueFeatures >= 5 {
		insights = append(insights, fmt.Sprintf("You've explored %d different features!", uniqueFeatures))
	}
	featureName := s.titler.String(strings.ReplaceAll(string(mostUsed), "-", " "))
	insights = append(insights, fmt.Sprintf("Your favorite feature is %s", featureName))

	return Recommendation{
		RecommendedFeatures: recommended,
		Insights:            insights,
		MostUsedFeature:     &mostUsed,
		TotalActions:        totalActions,
		UniqueFeatures:      uniqueFeatures,
	}
}

func coldStart() Recommendation {
	return Recommendation{
		RecommendedFeatures: coldStartFeatures,
		Insights:            []string{},
		Message:             "Start exploring our AI features!",
	}
}
