/*
Package roundel animates buses and trains along a transit network.

A Simulator resolves routes from the best available source (live arrival
predictions, a static topology, or a procedurally generated London-like
network), spawns a fleet on them and advances it on a clock. Frames are
pushed to WebSocket clients and a vehicle snapshot is served over HTTP.

Basic usage:

	sources, err := roundel.OpenSources(config.Config)
	if err != nil {
		log.Fatal(err)
	}
	sim := roundel.NewSimulator(sources.Resolver, roundel.OptionsFromConfig(config.Config))
	if err := sim.Start(ctx, resolver.ModeLive); err != nil {
		log.Fatal(err)
	}
	roundel.StartServer(sim, config.Config.Server)
	roundel.HandleGracefulShutdown(sim)

Switching source at runtime:

	sim.SetDataSource(resolver.ModeStatic)

Static and synthetic sources rebuild before SetDataSource returns. A live
source resolves in the background; its result is dropped if another
SetDataSource call arrives first.
*/
package roundel
