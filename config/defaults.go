package config

// DefaultLines are the TfL rail lines tracked by the live data source.
var DefaultLines = []string{
	"victoria", "piccadilly", "northern", "jubilee", "central", "district",
	"bakerloo", "waterloo-city", "circle", "hammersmith-city", "metropolitan",
	"dlr", "elizabeth", "tram",
}

// Default returns a configuration with every default applied.
func Default() AppConfig {
	var cfg AppConfig
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields. Booleans keep whatever the file said
// except Calibrate, which is only ever switched on explicitly.
func (c *AppConfig) ApplyDefaults() {
	setInt(&c.Server.Port, 16181)
	setInt(&c.Server.ReadTimeoutMS, 10000)
	setInt(&c.Server.WriteTimeoutMS, 30000)
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	s := &c.Simulation
	if s.Mode == "" {
		s.Mode = "synthetic"
	}
	setInt(&s.IntervalMS, 16)
	setInt(&s.CalibrationSamples, 10)
	setInt(&s.FastIntervalMS, 16)
	setInt(&s.SlowIntervalMS, 33)
	setFloat(&s.CostThresholdMS, 8)
	setInt(&s.BusesPerRoute, 2)
	setInt(&s.TrainsPerRoute, 2)
	setFloat(&s.MinSpeed, 0.005)
	setFloat(&s.MaxSpeed, 0.015)

	cam := &c.Camera
	setFloat(&cam.ScaleMin, 0.1)
	setFloat(&cam.ScaleMax, 50)
	setFloat(&cam.ThresholdPx, 10)
	setFloat(&cam.ViewportWidth, 1000)
	setFloat(&cam.ViewportHeight, 1000)

	p := &c.Projection
	if p.CenterLat == 0 && p.CenterLon == 0 {
		p.CenterLat, p.CenterLon = 51.5, -0.12
	}
	setFloat(&p.Scale, 5000)
	setFloat(&p.CanvasWidth, 1000)
	setFloat(&p.CanvasHeight, 1000)

	src := &c.Sources
	if len(src.Lines) == 0 {
		src.Lines = append([]string(nil), DefaultLines...)
	}
	setInt(&src.TimeoutMS, 10000)
	setFloat(&src.PredictionCapSeconds, 600)

	syn := &c.Synthetic
	if *syn == (SyntheticConfig{}) {
		*syn = SyntheticConfig{TrainRoutes: 10, RadialBusRoutes: 30, OrbitalBusRoutes: 20, CrossTownBusRoutes: 50}
	}
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}
