package main

import (
	"fmt"
	"time"

	"github.com/lmmx/roundel"
	"github.com/lmmx/roundel/formatter"
	"github.com/lmmx/roundel/resolver"
)

// oneshot resolves mode once, advances ticks frames and renders the fleet
// as a vehicle snapshot.
func oneshot(sim *roundel.Simulator, mode resolver.Mode, ticks int, format string, filter formatter.Filter) ([]byte, error) {
	if err := sim.SetDataSource(mode); err != nil {
		return nil, err
	}
	sim.Wait()
	for i := 0; i < ticks; i++ {
		sim.Tick()
	}
	res := formatter.BuildVehicleMonitoring(sim.Snapshot(), sim.Projection(), time.Now(), sim.Interval(), roundel.ProducerRef)
	res = formatter.FilterVehicleMonitoring(res, filter)
	rb := formatter.NewResponseBuilder()
	switch format {
	case "json":
		return rb.BuildJSON(res), nil
	case "xml":
		return rb.BuildXML(res), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
