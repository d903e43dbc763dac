package ccd

import "github.com/go-gl/mathgl/mgl64"

// Draw flags
const (
	DrawSweeps   = 1 << 0
	DrawImpacts  = 1 << 1
	DrawImpulses = 1 << 2
)

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

// IDrawer receives the poses and impulses the pass resolves, for debug
// rendering. Island workers call it concurrently, so implementations
// must synchronize their sink.
type IDrawer interface {
	DrawBox(bb BB, rot mgl64.Quat, outline FColor, data any)
	DrawSegment(a, b mgl64.Vec3, fill FColor, data any)
	DrawDot(size float64, pos mgl64.Vec3, fill FColor, data any)

	Flags() uint
	SweepStartColor() FColor
	SweepEndColor() FColor
	ImpactColor() FColor
	FinalColor() FColor
	ImpulseColor() FColor
	Data() any
}

// drawIslandSweeps shows each constraint's shapes at the start and end
// of their sweep, before any resolution.
func (m *Manager) drawIslandSweeps(constraints []*Constraint) {
	if m.Drawer == nil || m.Drawer.Flags()&DrawSweeps == 0 {
		return
	}
	data := m.Drawer.Data()
	for _, constraint := range constraints {
		m.drawConstraintShapes(constraint, true, m.Drawer.SweepStartColor(), data)
		m.drawConstraintShapes(constraint, false, m.Drawer.SweepEndColor(), data)
	}
}

// drawImpactPose shows the shapes at the pose an impulse is about to be
// applied in.
func (m *Manager) drawImpactPose(constraint *Constraint) {
	if m.Drawer == nil || m.Drawer.Flags()&DrawImpacts == 0 {
		return
	}
	m.drawConstraintShapes(constraint, true, m.Drawer.ImpactColor(), m.Drawer.Data())
}

// drawFinalPoses shows the shapes where the island solve left them.
func (m *Manager) drawFinalPoses(constraints []*Constraint) {
	if m.Drawer == nil || m.Drawer.Flags()&DrawSweeps == 0 {
		return
	}
	data := m.Drawer.Data()
	for _, constraint := range constraints {
		m.drawConstraintShapes(constraint, false, m.Drawer.FinalColor(), data)
	}
}

func (m *Manager) drawConstraintShapes(constraint *Constraint, atStart bool, color FColor, data any) {
	swept := constraint.Swept
	for i := 0; i < 2; i++ {
		if swept.Implicit[i] == nil {
			continue
		}
		body := swept.Particle[i]
		pose := body.endWorldTransform()
		if atStart {
			pose = NewTransform(body.position, body.rotation)
		}
		shapeWorld := pose.Mult(swept.ShapeRelativeTransform[i])
		m.Drawer.DrawBox(swept.Implicit[i].BoundingBox().Offset(shapeWorld.Pos), shapeWorld.Rot, color, data)
	}
}

func (m *Manager) drawImpulse(constraint *Constraint, pointIndex int, impulse mgl64.Vec3) {
	if m.Drawer == nil || m.Drawer.Flags()&DrawImpulses == 0 {
		return
	}
	data := m.Drawer.Data()
	color := m.Drawer.ImpulseColor()
	point := constraint.Swept.Points[pointIndex]
	at := constraint.Swept.ShapeWorldTransform[1].Apply(point.ShapeContactPoints[1])
	m.Drawer.DrawDot(5, at, color, data)
	m.Drawer.DrawSegment(at, at.Add(impulse), color, data)
}
