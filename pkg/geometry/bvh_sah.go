package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

const sahBuckets = 12

type sahBucket struct {
	count  int
	bounds core.AABB
}

// splitSAH partitions prims using a binned surface area heuristic:
// cost = leftCount·leftArea + rightCount·rightArea. Candidates that leave
// one side empty are rejected. It reports false when no candidate exists,
// for example when every centroid coincides.
func splitSAH(prims []Primitive) ([]Primitive, []Primitive, int, bool) {
	centroidBounds := core.EmptyAABB()
	for _, p := range prims {
		centroidBounds = centroidBounds.UnionPoint(p.BoundingBox().Centroid())
	}

	bestCost := math.Inf(1)
	bestAxis, bestSplit := -1, 0

	for axis := 0; axis < 3; axis++ {
		lo := centroidBounds.Min.Axis(axis)
		extent := centroidBounds.Max.Axis(axis) - lo
		if extent <= 0 {
			continue
		}

		var buckets [sahBuckets]sahBucket
		for i := range buckets {
			buckets[i].bounds = core.EmptyAABB()
		}
		for _, p := range prims {
			b := bucketIndex(p, axis, lo, extent)
			buckets[b].count++
			buckets[b].bounds = buckets[b].bounds.Union(p.BoundingBox())
		}

		// Split after bucket i: buckets [0, i] go left
		for i := 0; i < sahBuckets-1; i++ {
			left, right := core.EmptyAABB(), core.EmptyAABB()
			leftCount, rightCount := 0, 0
			for j := 0; j <= i; j++ {
				left = left.Union(buckets[j].bounds)
				leftCount += buckets[j].count
			}
			for j := i + 1; j < sahBuckets; j++ {
				right = right.Union(buckets[j].bounds)
				rightCount += buckets[j].count
			}
			if leftCount == 0 || rightCount == 0 {
				continue
			}

			cost := float64(leftCount)*left.SurfaceArea() + float64(rightCount)*right.SurfaceArea()
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestSplit = i
			}
		}
	}

	if bestAxis < 0 {
		return nil, nil, 0, false
	}

	lo := centroidBounds.Min.Axis(bestAxis)
	extent := centroidBounds.Max.Axis(bestAxis) - lo

	// Write the partition back so each side keeps its relative input order
	left := make([]Primitive, 0, len(prims))
	right := make([]Primitive, 0, len(prims))
	for _, p := range prims {
		if bucketIndex(p, bestAxis, lo, extent) <= bestSplit {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	n := copy(prims, left)
	copy(prims[n:], right)

	return prims[:n], prims[n:], bestAxis, true
}

func bucketIndex(p Primitive, axis int, lo, extent float64) int {
	offset := (p.BoundingBox().Centroid().Axis(axis) - lo) / extent
	b := int(offset * sahBuckets)
	if b >= sahBuckets {
		b = sahBuckets - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}
