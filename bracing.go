package rope

// BracingRule picks the links that get anti-sag braces: First, First+Stride,
// ... while the index stays below count-Trim. A Stride of zero or less
// disables bracing.
type BracingRule struct {
	First  int
	Stride int
	Trim   int
}

var (
	NoBracing = BracingRule{}

	// AlternateBracing braces every odd link.
	AlternateBracing = BracingRule{First: 1, Stride: 2}

	// InteriorBracing braces the odd links in [3, count-3).
	InteriorBracing = BracingRule{First: 3, Stride: 2, Trim: 3}
)

func (r BracingRule) Enabled() bool {
	return r.Stride > 0
}

// Indices lists the braced link indices for a chain of count links.
func (r BracingRule) Indices(count int) []int {
	if !r.Enabled() {
		return nil
	}
	first := r.First
	if first < 0 {
		first = 0
	}
	var out []int
	for i := first; i < count-r.Trim; i += r.Stride {
		out = append(out, i)
	}
	return out
}

// endpoint is a body and the world point the chain ends at on it.
type endpoint struct {
	body  Body
	point Vec2
}

// brace ties link back to both endpoints with max-distance joints whose limit
// is the distance at construction, so braces never pull the link in.
func (b *Builder) brace(agg *Aggregate, link Body, ends [2]endpoint) error {
	center := link.Position()
	for _, end := range ends {
		if end.body == nil || end.body == link {
			continue
		}
		j, err := b.Engine.CreateJoint(JointDef{
			Kind:      MaxDistanceJoint,
			BodyA:     link,
			BodyB:     end.body,
			AnchorA:   center,
			AnchorB:   end.point,
			MaxLength: Distance(center, end.point),
		})
		if err != nil {
			return err
		}
		agg.Joints = append(agg.Joints, j)
		agg.Braces = append(agg.Braces, j)
	}
	return nil
}
