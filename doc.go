// Package rope builds ropes and chains out of small rigid links inside a 2D
// rigid-body simulation, braces them against sagging, shoots them at whatever
// a ray strikes, and tears them down again.
//
// The simulation is reached through Engine; see the b2engine and cpengine
// packages for adapters over Box2D and Chipmunk.
package rope
