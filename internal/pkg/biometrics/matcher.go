package biometrics

import "math"

// Matching thresholds. Registration rejects a descriptor whose cosine
// similarity to any stored descriptor exceeds SimilarityThreshold; login
// and vote casting reject when Euclidean distance to the claimed person's
// stored descriptor exceeds DistanceThreshold.
const (
	SimilarityThreshold = 0.4
	DistanceThreshold   = 0.4
)

// EuclideanDistance returns the L2 distance between two descriptors.
// Descriptors of different lengths can never match: the distance is +Inf.
func EuclideanDistance(a, b Descriptor) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|), or 0 when lengths differ
// or either vector has zero norm.
func CosineSimilarity(a, b Descriptor) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Matches reports whether a supplied descriptor verifies against a stored
// one under the Euclidean login/vote policy.
func Matches(supplied, stored Descriptor) bool {
	return EuclideanDistance(supplied, stored) <= DistanceThreshold
}

// TooSimilar reports whether a new descriptor is rejected as a duplicate
// of an existing one under the registration policy.
func TooSimilar(candidate, existing Descriptor) bool {
	return CosineSimilarity(candidate, existing) > SimilarityThreshold
}
