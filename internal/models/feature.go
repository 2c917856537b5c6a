// Package models defines the persisted types for session tracking,
// interaction history and favorites.
package models

// FeatureType identifies one of the application's AI features. It is an
// open string so new features can be tracked without a schema change;
// the constants below cover the features the recommendation engine
// knows about.
type FeatureType string

const (
	FeatureTextToText   FeatureType = "text-to-text"
	FeatureTextToImage  FeatureType = "text-to-image"
	FeatureImageToText  FeatureType = "image-to-text"
	FeatureImageEnhance FeatureType = "image-enhance"
	FeatureOutpainting  FeatureType = "outpainting"
	FeatureVoiceToText  FeatureType = "voice-to-text"
	FeatureTextToAudio  FeatureType = "text-to-audio"
)

// KnownFeatures lists every feature the recommendation engine
// recognizes.
var KnownFeatures = []FeatureType{
	FeatureTextToText,
	FeatureTextToImage,
	FeatureImageToText,
	FeatureImageEnhance,
	FeatureOutpainting,
	FeatureVoiceToText,
	FeatureTextToAudio,
}

// Known reports whether f is one of the recognized features.
func (f FeatureType) Known() bool {
	for _, k := range KnownFeatures {
		if f == k {
			return true
		}
	}
	return false
}

func (f FeatureType) String() string {
	return string(f)
}
