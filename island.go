package ccd

import "log"

// assignParticleIslands splits the pass particles into connected
// components of the dynamic overlap graph. Each component can be
// resolved independently of the others.
func (m *Manager) assignParticleIslands() {
	m.islandCount = 0
	m.islandStack = m.islandStack[:0]
	m.groupedParticles = m.groupedParticles[:0]
	m.islandParticleStart = m.islandParticleStart[:0]
	m.islandParticleNum = m.islandParticleNum[:0]

	for i := range m.particles {
		root := &m.particles[i]
		if root.Island != IndexNone || root.Body.bodyType != Dynamic {
			continue
		}

		root.Island = m.islandCount
		m.islandStack = append(m.islandStack, root)
		m.islandParticleStart = append(m.islandParticleStart, len(m.groupedParticles))
		num := 0

		for len(m.islandStack) > 0 {
			particle := m.islandStack[len(m.islandStack)-1]
			m.islandStack = m.islandStack[:len(m.islandStack)-1]
			m.groupedParticles = append(m.groupedParticles, particle)
			num++

			for _, overlapping := range particle.OverlappingDynamicParticles {
				if overlapping.Island == IndexNone {
					overlapping.Island = m.islandCount
					m.islandStack = append(m.islandStack, overlapping)
				}
			}
		}

		m.islandParticleNum = append(m.islandParticleNum, num)
		m.islandCount++
	}
}

// assignConstraintIslands gives each constraint the island of its
// dynamic endpoints and counts constraints per island. Endpoints in
// the same constraint always share an island.
func (m *Manager) assignConstraintIslands() {
	m.islandConstraintNum = resize(m.islandConstraintNum, m.islandCount)
	for i := range m.islandConstraintNum {
		m.islandConstraintNum[i] = 0
	}

	for i := range m.constraints {
		constraint := &m.constraints[i]
		island := IndexNone
		if constraint.Particle[0] != nil {
			island = constraint.Particle[0].Island
		}
		if island == IndexNone {
			if constraint.Particle[1] == nil {
				log.Fatalln("ccd: constraint without a dynamic endpoint")
			}
			island = constraint.Particle[1].Island
		}
		constraint.Island = island
		m.islandConstraintNum[island]++
	}
}

// groupConstraints places each island's constraints into a contiguous
// range of sortedConstraints.
func (m *Manager) groupConstraints() {
	m.islandConstraintStart = resize(m.islandConstraintStart, m.islandCount+1)
	m.islandConstraintEnd = resize(m.islandConstraintEnd, m.islandCount)
	m.islandConstraintStart[0] = 0
	for island := 0; island < m.islandCount; island++ {
		m.islandConstraintEnd[island] = m.islandConstraintStart[island]
		m.islandConstraintStart[island+1] = m.islandConstraintStart[island] + m.islandConstraintNum[island]
	}

	m.sortedConstraints = resize(m.sortedConstraints, len(m.constraints))
	for i := range m.constraints {
		constraint := &m.constraints[i]
		m.sortedConstraints[m.islandConstraintEnd[constraint.Island]] = constraint
		m.islandConstraintEnd[constraint.Island]++
	}
}
