package testbed

import (
	"github.com/warrenfalk/rope"
)

// scene geometry shared by the rope scenes
var (
	basePosition     = rope.MakeVec2(0, 0)
	baseHalfExtents  = rope.MakeVec2(4, 2)
	obstaclePosition = rope.MakeVec2(0, -5)
	weightPosition   = rope.MakeVec2(-20, 19)
	weightHalf       = rope.MakeVec2(3, 1)

	// where the rope leaves the weight, in weight-local coordinates
	weightAnchor = rope.MakeVec2(3, 0)
)

const weightDensity = 20

func addBox(e rope.Engine, kind rope.BodyKind, pos, half rope.Vec2, density float64, filter rope.Filter) (rope.Body, error) {
	body, err := e.CreateBody(rope.BodyDef{Kind: kind, Position: pos})
	if err != nil {
		return nil, err
	}
	err = e.AttachShape(body, rope.ShapeDef{
		Kind:        rope.BoxShape,
		HalfExtents: half,
		Density:     density,
		Filter:      filter,
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// holder is the build/teardown toggle every scene shares.
type holder struct {
	name     string
	builder  *rope.Builder
	held     *rope.Aggregate
	listener Listener
}

func (h *holder) Name() string {
	return h.name
}

func (h *holder) Aggregate() *rope.Aggregate {
	return h.held
}

func (h *holder) SetListener(l Listener) {
	h.listener = l
}

func (h *holder) reset(e rope.Engine) {
	h.builder.Engine = e
	h.held = nil
}

func (h *holder) hold(agg *rope.Aggregate, probe *rope.Probe) {
	h.held = agg
	h.notify(Event{Kind: EventBuilt, Scene: h.name, Aggregate: agg, Probe: probe})
}

func (h *holder) release() {
	agg := h.held
	h.held = nil
	h.builder.Destroy(agg)
	h.notify(Event{Kind: EventDestroyed, Scene: h.name, Aggregate: agg})
}

// keep records whatever a failed build left behind so the next toggle tears
// it down.
func (h *holder) keep(agg *rope.Aggregate, err error) error {
	if agg != nil {
		h.hold(agg, nil)
	}
	return err
}

func (h *holder) notify(ev Event) {
	if h.listener != nil {
		h.listener(ev)
	}
}

// RopeScene hangs a weight in the air; the toggle shoots a rope from it
// toward the base and cuts the rope again.
type RopeScene struct {
	holder

	Base     rope.Body
	Obstacle rope.Body
	Weight   rope.Body
}

func NewRopeScene(t Tuning) (*RopeScene, error) {
	c, err := t.Apply(rope.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return &RopeScene{holder: holder{name: "Rope", builder: rope.NewBuilder(nil, c)}}, nil
}

func (s *RopeScene) Initialize(e rope.Engine) error {
	s.reset(e)
	return initRopeWorld(e, &s.Base, &s.Obstacle, &s.Weight)
}

func initRopeWorld(e rope.Engine, base, obstacle, weight *rope.Body) error {
	var err error
	*base, err = addBox(e, rope.StaticBody, basePosition, baseHalfExtents, 1,
		rope.Filter{CategoryBits: 0x0001, MaskBits: 0})
	if err != nil {
		return err
	}
	*obstacle, err = addBox(e, rope.StaticBody, obstaclePosition, baseHalfExtents, 1, rope.DefaultFilter)
	if err != nil {
		return err
	}
	*weight, err = addBox(e, rope.DynamicBody, weightPosition, weightHalf, weightDensity,
		rope.Filter{CategoryBits: rope.RopeCategory, MaskBits: 0xFFFF &^ rope.RopeCategory})
	return err
}

// Target is the point the rope is aimed at.
func (s *RopeScene) Target() rope.Vec2 {
	return s.Base.Position()
}

func (s *RopeScene) OnInput(cmd Command) error {
	if cmd != CommandToggle {
		return nil
	}
	if s.held != nil {
		s.release()
		return nil
	}

	from := s.Weight.WorldPoint(weightAnchor)
	angle := s.Target().Sub(from).Angle()
	agg, probe, err := s.builder.Shoot(s.Weight, weightAnchor, angle)
	if err != nil {
		return s.keep(agg, err)
	}
	s.hold(agg, &probe)
	return nil
}

// AnchoredRopeScene is RopeScene with the rope built straight between the
// base and the weight instead of shot.
type AnchoredRopeScene struct {
	holder

	Base     rope.Body
	Obstacle rope.Body
	Weight   rope.Body
}

func NewAnchoredRopeScene(t Tuning) (*AnchoredRopeScene, error) {
	c, err := t.Apply(rope.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return &AnchoredRopeScene{holder: holder{name: "Anchored rope", builder: rope.NewBuilder(nil, c)}}, nil
}

func (s *AnchoredRopeScene) Initialize(e rope.Engine) error {
	s.reset(e)
	return initRopeWorld(e, &s.Base, &s.Obstacle, &s.Weight)
}

func (s *AnchoredRopeScene) OnInput(cmd Command) error {
	if cmd != CommandToggle {
		return nil
	}
	if s.held != nil {
		s.release()
		return nil
	}
	agg, err := s.builder.Build(rope.Anchors{
		FromBody: s.Base,
		ToBody:   s.Weight,
		From:     s.Base.Position(),
		To:       s.Weight.WorldPoint(weightAnchor),
	})
	if err != nil {
		return s.keep(agg, err)
	}
	s.hold(agg, nil)
	return nil
}

// chain scene geometry
const (
	chainLinks         = 30
	chainWeightDensity = 10
)

var chainWeightHalf = rope.MakeVec2(1, 1)

// ChainScene hangs a weight from a base by an axis-aligned chain. The scene
// pins both ends itself; after the chain is cut the toggle rebuilds it with
// the builder pinning the ends to wherever the weight fell.
type ChainScene struct {
	holder

	Base   rope.Body
	Weight rope.Body

	// pins made by the scene rather than the builder
	pins []rope.Joint
}

func NewChainScene(t Tuning) (*ChainScene, error) {
	c, err := t.Apply(rope.ChainConfig())
	if err != nil {
		return nil, err
	}
	return &ChainScene{holder: holder{name: "Chain", builder: rope.NewBuilder(nil, c)}}, nil
}

func (s *ChainScene) Initialize(e rope.Engine) error {
	s.reset(e)
	s.pins = nil

	var err error
	s.Base, err = addBox(e, rope.StaticBody, basePosition, baseHalfExtents, 1,
		rope.Filter{CategoryBits: 0x0001, MaskBits: 0})
	if err != nil {
		return err
	}

	to := basePosition.Add(rope.MakeVec2(s.builder.Config.Resolution*chainLinks, 0))
	agg, err := s.builder.Build(rope.Anchors{From: basePosition, To: to})
	if err != nil {
		return s.keep(agg, err)
	}
	s.hold(agg, nil)

	pin, err := e.CreateJoint(rope.JointDef{Kind: rope.RotationalJoint, BodyA: s.Base, BodyB: agg.Head, AnchorA: basePosition})
	if err != nil {
		return err
	}
	s.pins = append(s.pins, pin)

	s.Weight, err = addBox(e, rope.DynamicBody, agg.Tail.Position(), chainWeightHalf, chainWeightDensity,
		rope.Filter{CategoryBits: 0x0001, MaskBits: 0})
	if err != nil {
		return err
	}
	pin, err = e.CreateJoint(rope.JointDef{Kind: rope.RotationalJoint, BodyA: agg.Tail, BodyB: s.Weight, AnchorA: s.Weight.Position()})
	if err != nil {
		return err
	}
	s.pins = append(s.pins, pin)
	return nil
}

func (s *ChainScene) OnInput(cmd Command) error {
	if cmd != CommandToggle {
		return nil
	}
	if s.held != nil {
		// pins reference the links, so they go first
		for _, pin := range s.pins {
			s.builder.Engine.DestroyJoint(pin)
		}
		s.pins = nil
		s.release()
		return nil
	}
	agg, err := s.builder.Build(rope.Anchors{
		FromBody: s.Base,
		ToBody:   s.Weight,
		From:     basePosition,
		To:       s.Weight.Position(),
	})
	if err != nil {
		return s.keep(agg, err)
	}
	s.hold(agg, nil)
	return nil
}

const circleChainLinks = 20

// CircleChainScene strings circles between the base and a weight that hangs
// off the free end by a fixed-distance joint.
type CircleChainScene struct {
	holder

	Base   rope.Body
	Weight rope.Body
	tether rope.Joint
}

func NewCircleChainScene(t Tuning) (*CircleChainScene, error) {
	c, err := t.Apply(rope.CircleChainConfig())
	if err != nil {
		return nil, err
	}
	return &CircleChainScene{holder: holder{name: "Circle chain", builder: rope.NewBuilder(nil, c)}}, nil
}

func (s *CircleChainScene) Initialize(e rope.Engine) error {
	s.reset(e)
	s.tether = nil

	var err error
	s.Base, err = addBox(e, rope.StaticBody, basePosition, baseHalfExtents, 1,
		rope.Filter{CategoryBits: 0x0001, MaskBits: 0})
	if err != nil {
		return err
	}

	to := basePosition.Add(rope.MakeVec2(s.builder.Config.Resolution*circleChainLinks, 0))
	agg, err := s.builder.Build(rope.Anchors{FromBody: s.Base, From: basePosition, To: to})
	if err != nil {
		return s.keep(agg, err)
	}
	s.hold(agg, nil)

	s.Weight, err = addBox(e, rope.DynamicBody, to.Add(rope.MakeVec2(1, 0)), chainWeightHalf, chainWeightDensity,
		rope.Filter{CategoryBits: 0x0001, MaskBits: 0})
	if err != nil {
		return err
	}
	s.tether, err = e.CreateJoint(rope.JointDef{
		Kind:    rope.FixedDistanceJoint,
		BodyA:   agg.Tail,
		BodyB:   s.Weight,
		AnchorA: agg.Tail.Position(),
		AnchorB: s.Weight.Position(),
	})
	return err
}

func (s *CircleChainScene) OnInput(cmd Command) error {
	if cmd != CommandToggle {
		return nil
	}
	if s.held != nil {
		if s.tether != nil {
			s.builder.Engine.DestroyJoint(s.tether)
			s.tether = nil
		}
		s.release()
		return nil
	}
	agg, err := s.builder.Build(rope.Anchors{
		FromBody: s.Base,
		ToBody:   s.Weight,
		From:     basePosition,
		To:       s.Weight.Position(),
	})
	if err != nil {
		return s.keep(agg, err)
	}
	s.hold(agg, nil)
	return nil
}
