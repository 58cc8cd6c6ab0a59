package rope

// Aggregate owns the links and joints one Build created. The anchor bodies
// passed to Build are never owned.
type Aggregate struct {
	Layout Layout
	Head   Body
	Tail   Body

	// Links and Joints are in construction order.
	Links  []Body
	Joints []Joint

	// Cap is the joint spanning both endpoints; nil if the build stopped
	// before it was made. Braces are also listed in Joints.
	Cap    Joint
	Braces []Joint

	destroyed bool
}

func (a *Aggregate) BodyCount() int {
	return len(a.Links)
}

func (a *Aggregate) JointCount() int {
	return len(a.Joints)
}

// CountJoints tallies the aggregate's joints by kind.
func (a *Aggregate) CountJoints() map[JointKind]int {
	counts := make(map[JointKind]int)
	for _, j := range a.Joints {
		if j != nil {
			counts[j.Kind()]++
		}
	}
	return counts
}

// Owns reports whether b is one of the aggregate's links.
func (a *Aggregate) Owns(b Body) bool {
	for _, link := range a.Links {
		if link == b {
			return true
		}
	}
	return false
}

func (a *Aggregate) Destroyed() bool {
	return a.destroyed
}

// Destroy removes every joint and then every link from e, skipping any the
// engine already removed. The aggregate must not be used afterwards;
// destroying it twice panics.
func (a *Aggregate) Destroy(e Engine) {
	if a.destroyed {
		panic("rope: aggregate destroyed twice")
	}
	a.destroyed = true

	for i, j := range a.Joints {
		// joints can go down with an anchor body destroyed elsewhere
		if j != nil && !j.Destroyed() {
			e.DestroyJoint(j)
		}
		a.Joints[i] = nil
	}
	for i, link := range a.Links {
		if link != nil && !link.Destroyed() {
			e.DestroyBody(link)
		}
		a.Links[i] = nil
	}
	a.Head, a.Tail, a.Cap, a.Braces = nil, nil, nil, nil
}

// Destroy tears down an aggregate this builder created.
func (b *Builder) Destroy(a *Aggregate) {
	a.Destroy(b.Engine)
}
