package palette

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// ClusterOptions configures k-means refinement.
type ClusterOptions struct {
	// MaxIterations caps the number of assign/update rounds.
	MaxIterations int
	// Epsilon is the per-component centroid movement (Lab units) below which
	// iteration stops.
	Epsilon float64
}

// DefaultClusterOptions returns 20 iterations with a 0.01 epsilon.
func DefaultClusterOptions() ClusterOptions {
	return ClusterOptions{
		MaxIterations: 20,
		Epsilon:       0.01,
	}
}

// Validate validates the cluster options.
func (o ClusterOptions) Validate() error {
	if o.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", o.MaxIterations)
	}
	if o.Epsilon <= 0 || math.IsNaN(o.Epsilon) {
		return fmt.Errorf("epsilon must be positive, got %v", o.Epsilon)
	}
	return nil
}

// Clustering is the final state of one k-means run.
type Clustering struct {
	// Centroids holds k cluster centres.
	Centroids []Lab
	// Assignments maps each input point to its centroid index.
	Assignments []int
	// Counts holds the number of points assigned to each centroid.
	Counts []int
	// Iterations is the number of assign/update rounds performed.
	Iterations int
	// Converged reports whether the run stopped before the iteration cap.
	Converged bool
}

// Cluster partitions points into k clusters.
//
// Centroids start at k distinct points picked uniformly at random by index.
// A cluster that loses all its members keeps its previous centroid.
func Cluster(ctx context.Context, points []Lab, k int, rng *rand.Rand, opts ClusterOptions) (*Clustering, error) {
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be at least 1, got %d", k)
	}
	if len(points) < k {
		return nil, fmt.Errorf("%w: %d points, %d clusters requested", ErrInsufficientSamples, len(points), k)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	centroids := initialCentroids(points, k, rng)
	assignments := make([]int, len(points))
	result := &Clustering{}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for i, point := range points {
			assignments[i] = nearestCentroid(point, centroids)
		}

		updated := recalculateCentroids(points, assignments, centroids)
		converged := moved(centroids, updated) < opts.Epsilon
		centroids = updated
		result.Iterations = iter + 1

		if converged {
			result.Converged = true
			break
		}
	}

	result.Centroids = centroids
	result.Assignments = assignments
	result.Counts = make([]int, k)
	for _, a := range assignments {
		result.Counts[a]++
	}
	return result, nil
}

// initialCentroids draws random indices, rejecting repeats, until k distinct
// points have been picked.
func initialCentroids(points []Lab, k int, rng *rand.Rand) []Lab {
	centroids := make([]Lab, 0, k)
	used := make(map[int]struct{}, k)
	for len(centroids) < k {
		idx := rng.Intn(len(points))
		if _, ok := used[idx]; ok {
			continue
		}
		used[idx] = struct{}{}
		centroids = append(centroids, points[idx])
	}
	return centroids
}

// nearestCentroid returns the index of the closest centroid. The first
// minimum wins ties.
func nearestCentroid(point Lab, centroids []Lab) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if dist := point.distance(centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids returns the mean of each cluster. Empty clusters keep
// their previous centroid.
func recalculateCentroids(points []Lab, assignments []int, previous []Lab) []Lab {
	k := len(previous)
	sums := make([]Lab, k)
	counts := make([]int, k)

	for i, point := range points {
		c := assignments[i]
		sums[c].L += point.L
		sums[c].A += point.A
		sums[c].B += point.B
		counts[c]++
	}

	centroids := make([]Lab, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = previous[i]
			continue
		}
		n := float64(counts[i])
		centroids[i] = Lab{L: sums[i].L / n, A: sums[i].A / n, B: sums[i].B / n}
	}
	return centroids
}

// moved returns the largest single-component shift between two centroid sets.
func moved(before, after []Lab) float64 {
	var largest float64
	for i := range before {
		largest = max(largest,
			math.Abs(before[i].L-after[i].L),
			math.Abs(before[i].A-after[i].A),
			math.Abs(before[i].B-after[i].B),
		)
	}
	return largest
}
