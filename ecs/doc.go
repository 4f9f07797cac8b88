// Package ecs connects a toasters field to a [Donburi] world.
//
// [NewDonburiSink] publishes respawn and deflection events as typed
// Donburi events on [FieldEventType]; [NewTally] keeps running counts of
// them in a component.
//
// Usage:
//
//	world := donburi.NewWorld()
//	tally := ecs.NewTally(world)
//	field.SetEventSink(ecs.NewDonburiSink(world))
//	// each frame
//	ecs.FieldEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
