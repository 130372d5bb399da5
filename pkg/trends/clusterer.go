package trends

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/lazydrobe/lazydrobe-engine/pkg/apperrors"
)

const (
	kMeansMaxIterations = 100
	kMeansTolerance     = 1e-4

	// K is always clamped into this range: fewer than 2 clusters merges
	// unrelated topics, more than 5 fragments single topics at the corpus
	// sizes this pipeline sees (a handful of scraped articles).
	minClusters        = 2
	maxClustersCeiling = 5
)

// Clusterer partitions document embeddings into topic clusters using
// k-means with seeded centroid initialization, so repeated runs over the
// same embeddings are reproducible.
type Clusterer struct {
	maxK   int
	seed   int64
	logger *zap.Logger
}

// NewClusterer creates a clusterer. maxK bounds the candidate cluster
// counts; seed fixes centroid initialization.
func NewClusterer(maxK int, seed int64, logger *zap.Logger) *Clusterer {
	if maxK < minClusters {
		maxK = maxClustersCeiling
	}
	return &Clusterer{maxK: maxK, seed: seed, logger: logger.Named("clusterer")}
}

// Cluster assigns every embedding a cluster id. Ids are contiguous from 0
// and each embedding gets exactly one. Returns the assignments and the
// number of clusters.
func (c *Clusterer) Cluster(embeddings [][]float64) ([]int, int, error) {
	n := len(embeddings)
	if n < minClusters {
		return nil, 0, fmt.Errorf("clustering needs at least %d embeddings, got %d: %w",
			minClusters, n, apperrors.ErrDataUnavailable)
	}

	dim := len(embeddings[0])
	for i, e := range embeddings {
		if len(e) != dim {
			return nil, 0, fmt.Errorf("embedding %d has dimension %d, want %d", i, len(e), dim)
		}
	}

	data := mat.NewDense(n, dim, nil)
	for i, e := range embeddings {
		data.SetRow(i, e)
	}

	k := c.chooseK(data, n)
	c.logger.Debug("clustering embeddings", zap.Int("documents", n), zap.Int("k", k))

	rng := rand.New(rand.NewSource(c.seed))
	assignments, _ := kMeans(data, k, rng)

	return compactAssignments(assignments), countClusters(assignments), nil
}

// chooseK evaluates inertia for K in [2, min(maxK, n)] and picks the K
// with the largest relative inertia drop (a simple elbow), clamped to
// [2,5]. Each candidate uses a seed derived from the configured seed so
// the whole selection is deterministic.
func (c *Clusterer) chooseK(data *mat.Dense, n int) int {
	maxK := c.maxK
	if maxK > n {
		maxK = n
	}
	if maxK <= minClusters {
		return minClusters
	}

	inertias := make([]float64, 0, maxK-minClusters+1)
	for k := minClusters; k <= maxK; k++ {
		rng := rand.New(rand.NewSource(c.seed + int64(k)))
		_, inertia := kMeans(data, k, rng)
		inertias = append(inertias, inertia)
	}

	best := minClusters
	bestDrop := 0.0
	for i := 1; i < len(inertias); i++ {
		prev := inertias[i-1]
		if prev <= 0 {
			break
		}
		drop := (prev - inertias[i]) / prev
		if drop > bestDrop {
			bestDrop = drop
			best = minClusters + i
		}
	}

	if best > maxClustersCeiling {
		best = maxClustersCeiling
	}
	return best
}

// kMeans runs Lloyd's algorithm with k-means++ initialization and returns
// the assignments plus the final inertia (sum of squared distances to
// assigned centroids).
func kMeans(data *mat.Dense, k int, rng *rand.Rand) ([]int, float64) {
	n, _ := data.Dims()
	if k > n {
		k = n
	}

	centroids := initCentroids(data, k, rng)
	assignments := make([]int, n)

	for iter := 0; iter < kMeansMaxIterations; iter++ {
		changed := false
		for i := 0; i < n; i++ {
			best := nearestCentroid(data.RawRowView(i), centroids)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}

		next := updateCentroids(data, assignments, centroids)
		shift := centroidShift(centroids, next)
		centroids = next

		if !changed || shift < kMeansTolerance {
			break
		}
	}

	inertia := 0.0
	for i := 0; i < n; i++ {
		inertia += squaredDistance(data.RawRowView(i), centroids.RawRowView(assignments[i]))
	}
	return assignments, inertia
}

// initCentroids uses k-means++ seeding: the first centroid is a random
// point, each further centroid is drawn with probability proportional to
// its squared distance from the nearest chosen centroid.
func initCentroids(data *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	n, d := data.Dims()
	centroids := mat.NewDense(k, d, nil)
	centroids.SetRow(0, data.RawRowView(rng.Intn(n)))

	for i := 1; i < k; i++ {
		weights := make([]float64, n)
		total := 0.0
		for j := 0; j < n; j++ {
			minDist := math.Inf(1)
			for c := 0; c < i; c++ {
				if dist := squaredDistance(data.RawRowView(j), centroids.RawRowView(c)); dist < minDist {
					minDist = dist
				}
			}
			weights[j] = minDist
			total += minDist
		}

		if total == 0 {
			// All points coincide with a centroid already.
			centroids.SetRow(i, data.RawRowView(rng.Intn(n)))
			continue
		}

		target := rng.Float64() * total
		cum := 0.0
		for j, w := range weights {
			cum += w
			if cum >= target {
				centroids.SetRow(i, data.RawRowView(j))
				break
			}
		}
	}

	return centroids
}

func nearestCentroid(point []float64, centroids *mat.Dense) int {
	k, _ := centroids.Dims()
	best := 0
	bestDist := math.Inf(1)
	for c := 0; c < k; c++ {
		if dist := squaredDistance(point, centroids.RawRowView(c)); dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	return best
}

// updateCentroids recomputes each centroid as the mean of its members.
// Empty clusters keep their previous centroid.
func updateCentroids(data *mat.Dense, assignments []int, prev *mat.Dense) *mat.Dense {
	n, d := data.Dims()
	k, _ := prev.Dims()

	next := mat.NewDense(k, d, nil)
	counts := make([]int, k)
	for i := 0; i < n; i++ {
		c := assignments[i]
		counts[c]++
		row := data.RawRowView(i)
		for j := 0; j < d; j++ {
			next.Set(c, j, next.At(c, j)+row[j])
		}
	}
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			next.SetRow(c, prev.RawRowView(c))
			continue
		}
		for j := 0; j < d; j++ {
			next.Set(c, j, next.At(c, j)/float64(counts[c]))
		}
	}
	return next
}

func centroidShift(old, next *mat.Dense) float64 {
	k, _ := old.Dims()
	total := 0.0
	for c := 0; c < k; c++ {
		total += squaredDistance(old.RawRowView(c), next.RawRowView(c))
	}
	return total / float64(k)
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// compactAssignments remaps cluster ids so they are contiguous from 0 in
// order of first appearance (empty clusters drop out).
func compactAssignments(assignments []int) []int {
	remap := make(map[int]int)
	out := make([]int, len(assignments))
	for i, a := range assignments {
		id, ok := remap[a]
		if !ok {
			id = len(remap)
			remap[a] = id
		}
		out[i] = id
	}
	return out
}

func countClusters(assignments []int) int {
	seen := make(map[int]struct{})
	for _, a := range assignments {
		seen[a] = struct{}{}
	}
	return len(seen)
}
