package geometry

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("geometry")

// SplitMethod selects how interior BVH nodes partition their primitives
type SplitMethod int

const (
	// SplitNaive sorts by centroid along the widest axis and splits at the median
	SplitNaive SplitMethod = iota
	// SplitSAH picks the binned split with the lowest surface area cost
	SplitSAH
)

// String returns the flag spelling of the split method
func (m SplitMethod) String() string {
	switch m {
	case SplitSAH:
		return "sah"
	default:
		return "naive"
	}
}

// ParseSplitMethod parses "naive" or "sah"
func ParseSplitMethod(name string) (SplitMethod, error) {
	switch strings.ToLower(name) {
	case "naive", "":
		return SplitNaive, nil
	case "sah":
		return SplitSAH, nil
	default:
		return SplitNaive, fmt.Errorf("unknown split method %q", name)
	}
}

// Bounds for the number of primitives a leaf may own
const (
	minPrimsInNode = 1
	maxPrimsInNode = 255
)

// BVHOptions configures BVH construction
type BVHOptions struct {
	MaxPrimsInNode int         // Clamped to [1, 255]
	SplitMethod    SplitMethod // Partitioning policy for interior nodes
}

// DefaultBVHOptions returns one primitive per leaf with the naive split
func DefaultBVHOptions() BVHOptions {
	return BVHOptions{MaxPrimsInNode: 1, SplitMethod: SplitNaive}
}

func (o BVHOptions) normalized() BVHOptions {
	if o.MaxPrimsInNode < minPrimsInNode {
		o.MaxPrimsInNode = minPrimsInNode
	}
	if o.MaxPrimsInNode > maxPrimsInNode {
		o.MaxPrimsInNode = maxPrimsInNode
	}
	return o
}

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	Bounds     core.AABB
	Left       *BVHNode
	Right      *BVHNode
	Primitives []Primitive // Set only on leaves
	Area       float64     // Summed area of every primitive below this node
	SplitAxis  int         // Axis the primitives were partitioned on (interior nodes)
}

// IsLeaf reports whether the node owns primitives directly
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BVH is a binary tree of bounding volumes over primitives
type BVH struct {
	Root    *BVHNode
	Options BVHOptions
}

// NewBVH constructs a BVH from a slice of primitives. The input slice is not
// modified. An empty input yields a tree with a nil root.
func NewBVH(prims []Primitive, opts BVHOptions) *BVH {
	opts = opts.normalized()
	if len(prims) == 0 {
		return &BVH{Options: opts}
	}

	// Copy so sorting never reorders the caller's slice
	work := make([]Primitive, len(prims))
	copy(work, prims)

	start := time.Now()
	builder := bvhBuilder{options: opts}
	root := builder.build(work)

	bvh := &BVH{Root: root, Options: opts}
	stats := bvh.Stats()
	logger.Debugf(
		"BVH build time: %s, split: %s, nodes: %d, leaves: %d, max depth: %d",
		time.Since(start), opts.SplitMethod, stats.Nodes, stats.Leaves, stats.MaxDepth,
	)
	return bvh
}

type bvhBuilder struct {
	options BVHOptions
}

func (b *bvhBuilder) build(prims []Primitive) *BVHNode {
	bounds := core.EmptyAABB()
	for _, p := range prims {
		bounds = bounds.Union(p.BoundingBox())
	}

	if len(prims) <= b.options.MaxPrimsInNode {
		return newLeaf(bounds, prims)
	}

	// Two primitives become two leaves directly
	if len(prims) == 2 {
		return newInterior(b.build(prims[:1]), b.build(prims[1:]), 0)
	}

	var (
		left, right []Primitive
		axis        int
		ok          bool
	)
	if b.options.SplitMethod == SplitSAH {
		left, right, axis, ok = splitSAH(prims)
	}
	if !ok {
		left, right, axis = splitMedian(prims)
	}

	return newInterior(b.build(left), b.build(right), axis)
}

func newLeaf(bounds core.AABB, prims []Primitive) *BVHNode {
	area := 0.0
	for _, p := range prims {
		area += p.Area()
	}
	return &BVHNode{
		Bounds:     bounds,
		Primitives: prims,
		Area:       area,
	}
}

func newInterior(left, right *BVHNode, axis int) *BVHNode {
	return &BVHNode{
		Bounds:    left.Bounds.Union(right.Bounds),
		Left:      left,
		Right:     right,
		Area:      left.Area + right.Area,
		SplitAxis: axis,
	}
}

// splitMedian sorts by centroid along the widest centroid axis. The left half
// gets ⌊n/2⌋ primitives.
func splitMedian(prims []Primitive) ([]Primitive, []Primitive, int) {
	centroidBounds := core.EmptyAABB()
	for _, p := range prims {
		centroidBounds = centroidBounds.UnionPoint(p.BoundingBox().Centroid())
	}
	axis := centroidBounds.MaxExtent()

	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].BoundingBox().Centroid().Axis(axis) < prims[j].BoundingBox().Centroid().Axis(axis)
	})

	mid := len(prims) / 2
	return prims[:mid], prims[mid:], axis
}

// Intersect returns the nearest intersection along the ray, or NoHit
func (bvh *BVH) Intersect(ray core.Ray) Intersection {
	if bvh.Root == nil {
		return NoHit()
	}
	return intersectNode(bvh.Root, ray)
}

func intersectNode(node *BVHNode, ray core.Ray) Intersection {
	if !node.Bounds.IntersectP(ray) {
		return NoHit()
	}

	if node.IsLeaf() {
		closest := NoHit()
		for _, p := range node.Primitives {
			if hit := p.Intersect(ray); hit.Happened && hit.Distance < closest.Distance {
				closest = hit
			}
		}
		return closest
	}

	left := intersectNode(node.Left, ray)
	right := intersectNode(node.Right, ray)

	// Ties go to the left child
	if right.Distance < left.Distance {
		return right
	}
	return left
}

// Sample picks a point with probability proportional to area over every
// primitive in the tree. The returned PDF is 1/Area() for a consistent tree.
// It reports false when the tree is empty or has zero area.
func (bvh *BVH) Sample(sampler core.Sampler) (SurfaceSample, bool) {
	if bvh.Root == nil || bvh.Root.Area <= 0 {
		return SurfaceSample{}, false
	}

	p := sampler.Get1D() * bvh.Root.Area
	sample := sampleNode(bvh.Root, p, sampler)
	sample.PDF /= bvh.Root.Area
	return sample, true
}

// sampleNode descends towards the primitive covering p. The sample PDF is
// scaled by the primitive's area on the way out.
func sampleNode(node *BVHNode, p float64, sampler core.Sampler) SurfaceSample {
	if node.IsLeaf() {
		prim := pickByArea(node.Primitives, p)
		sample := prim.Sample(sampler)
		sample.PDF *= prim.Area()
		return sample
	}

	if p < node.Left.Area {
		return sampleNode(node.Left, p, sampler)
	}
	return sampleNode(node.Right, p-node.Left.Area, sampler)
}

// pickByArea walks the primitives subtracting areas until p falls inside one.
// Rounding may leave p past the end, in which case the last primitive with
// positive area is used.
func pickByArea(prims []Primitive, p float64) Primitive {
	chosen := prims[len(prims)-1]
	for _, prim := range prims {
		area := prim.Area()
		if area <= 0 {
			continue
		}
		chosen = prim
		if p < area {
			break
		}
		p -= area
	}
	return chosen
}

// BoundingBox returns the bounds of the whole tree
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB()
	}
	return bvh.Root.Bounds
}

// Area returns the total area of every primitive in the tree
func (bvh *BVH) Area() float64 {
	if bvh.Root == nil {
		return 0
	}
	return bvh.Root.Area
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	Nodes        int
	Leaves       int
	MaxDepth     int
	AvgLeafDepth float64
	Primitives   int
	MaxLeafSize  int
}

// Stats walks the tree and returns its shape
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh.Root == nil {
		return stats
	}

	collectStats(bvh.Root, 0, &stats)

	// Average depth is accumulated as a sum during the walk
	if stats.Leaves > 0 {
		stats.AvgLeafDepth /= float64(stats.Leaves)
	}
	return stats
}

func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.IsLeaf() {
		stats.Leaves++
		stats.Primitives += len(node.Primitives)
		stats.AvgLeafDepth += float64(depth)
		if len(node.Primitives) > stats.MaxLeafSize {
			stats.MaxLeafSize = len(node.Primitives)
		}
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
