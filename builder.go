package rope

import (
	"errors"
	"fmt"
)

// ErrPartialBuild accompanies an aggregate the engine refused to finish. The
// aggregate holds whatever was created and must still be destroyed.
var ErrPartialBuild = errors.New("rope: build stopped part way")

// Anchors are the ends of a span. Either body may be nil, in which case the
// caller is responsible for pinning that end.
type Anchors struct {
	FromBody Body
	ToBody   Body
	From     Vec2
	To       Vec2
}

// Builder creates ropes and chains in one engine.
type Builder struct {
	Engine Engine
	Config Config
}

func NewBuilder(e Engine, c Config) *Builder {
	return &Builder{Engine: e, Config: c}
}

// Build lays out the span between the anchors and creates its links and
// joints. Layout errors are returned before the engine is touched. If the
// engine fails part way, the partial aggregate is returned along with an error
// wrapping ErrPartialBuild.
func (b *Builder) Build(a Anchors) (*Aggregate, error) {
	layout, err := NewLayout(b.Config.Variant, b.Config.Thickness, b.Config.Resolution, a.From, a.To)
	if err != nil {
		return nil, err
	}

	agg := &Aggregate{
		Layout: layout,
		Links:  make([]Body, 0, layout.Count),
		Joints: make([]Joint, 0, b.jointEstimate(layout.Count)),
	}
	if err := b.build(agg, a); err != nil {
		return agg, fmt.Errorf("%w: %d links, %d joints created: %w",
			ErrPartialBuild, len(agg.Links), len(agg.Joints), err)
	}
	return agg, nil
}

func (b *Builder) build(agg *Aggregate, a Anchors) error {
	c := b.Config
	layout := agg.Layout

	for _, p := range layout.Placements {
		link, err := b.Engine.CreateBody(BodyDef{
			Kind:           DynamicBody,
			Position:       p.Position,
			Angle:          p.Angle,
			LinearDamping:  c.LinearDamping,
			AngularDamping: c.AngularDamping,
		})
		if err != nil {
			return err
		}
		agg.Links = append(agg.Links, link)
		if err := b.Engine.AttachShape(link, c.linkShape(p)); err != nil {
			return err
		}

		if p.Index == 0 {
			agg.Head = link
		} else if err := b.joinLinks(agg, agg.Links[p.Index-1], link, p); err != nil {
			return err
		}
		agg.Tail = link
	}

	if a.FromBody != nil {
		if err := b.pin(agg, a.FromBody, agg.Head, a.From); err != nil {
			return err
		}
	}
	if a.ToBody != nil {
		if err := b.pin(agg, agg.Tail, a.ToBody, layout.Boundary(layout.Count)); err != nil {
			return err
		}
	}

	ends := [2]endpoint{{a.FromBody, a.From}, {a.ToBody, a.To}}
	if ends[0].body == nil {
		ends[0].body = agg.Head
	}
	if ends[1].body == nil {
		ends[1].body = agg.Tail
	}

	for _, i := range c.Bracing.Indices(layout.Count) {
		if err := b.brace(agg, agg.Links[i], ends); err != nil {
			return err
		}
	}

	// both ends on one body: the cap spans the links instead
	capA, capB := ends[0], ends[1]
	if capA.body == capB.body {
		capA = endpoint{agg.Head, a.From}
		capB = endpoint{agg.Tail, a.To}
	}
	if capA.body == capB.body {
		return nil
	}

	capJoint, err := b.Engine.CreateJoint(JointDef{
		Kind:      c.Cap,
		BodyA:     capA.body,
		BodyB:     capB.body,
		AnchorA:   capA.point,
		AnchorB:   capB.point,
		MaxLength: layout.Length,
	})
	if err != nil {
		return err
	}
	agg.Joints = append(agg.Joints, capJoint)
	agg.Cap = capJoint
	return nil
}

// joinLinks connects link to its predecessor.
func (b *Builder) joinLinks(agg *Aggregate, prev, link Body, p Placement) error {
	def := JointDef{
		Kind:    RotationalJoint,
		BodyA:   prev,
		BodyB:   link,
		AnchorA: p.Start,
	}
	if b.Config.Links == CircleLinks {
		def = JointDef{
			Kind:      FixedDistanceJoint,
			BodyA:     prev,
			BodyB:     link,
			AnchorA:   prev.Position(),
			AnchorB:   link.Position(),
			MaxLength: Distance(prev.Position(), link.Position()),
		}
	}
	j, err := b.Engine.CreateJoint(def)
	if err != nil {
		return err
	}
	agg.Joints = append(agg.Joints, j)
	return nil
}

func (b *Builder) pin(agg *Aggregate, bodyA, bodyB Body, at Vec2) error {
	j, err := b.Engine.CreateJoint(JointDef{
		Kind:    RotationalJoint,
		BodyA:   bodyA,
		BodyB:   bodyB,
		AnchorA: at,
	})
	if err != nil {
		return err
	}
	agg.Joints = append(agg.Joints, j)
	return nil
}

func (b *Builder) jointEstimate(count int) int {
	n := count + 2
	if b.Config.Bracing.Enabled() {
		n += 2 * len(b.Config.Bracing.Indices(count))
	}
	return n
}
