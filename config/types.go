package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           int `yaml:"port" validate:"gt=0,lte=65535"`
	ReadTimeoutMS  int `yaml:"readTimeoutMS" validate:"gte=0"`
	WriteTimeoutMS int `yaml:"writeTimeoutMS" validate:"gte=0"`
}

// SimulationConfig contains tick scheduling and fleet density settings
type SimulationConfig struct {
	Mode               string  `yaml:"mode" validate:"oneof=live static synthetic"`
	IntervalMS         int     `yaml:"intervalMS" validate:"gt=0"`
	Calibrate          bool    `yaml:"calibrate"`
	CalibrationSamples int     `yaml:"calibrationSamples" validate:"gt=0"`
	FastIntervalMS     int     `yaml:"fastIntervalMS" validate:"gt=0"`
	SlowIntervalMS     int     `yaml:"slowIntervalMS" validate:"gtefield=FastIntervalMS"`
	CostThresholdMS    float64 `yaml:"costThresholdMS" validate:"gt=0"`
	BusesPerRoute      int     `yaml:"busesPerRoute" validate:"gte=0"`
	TrainsPerRoute     int     `yaml:"trainsPerRoute" validate:"gte=0"`
	MinSpeed           float64 `yaml:"minSpeed" validate:"gte=0"`
	MaxSpeed           float64 `yaml:"maxSpeed" validate:"gtefield=MinSpeed"`
	Seed               int64   `yaml:"seed"`
}

// CameraConfig contains view transform limits
type CameraConfig struct {
	ScaleMin       float64 `yaml:"scaleMin" validate:"gt=0"`
	ScaleMax       float64 `yaml:"scaleMax" validate:"gtfield=ScaleMin"`
	ThresholdPx    float64 `yaml:"thresholdPx" validate:"gt=0"`
	ViewportWidth  float64 `yaml:"viewportWidth" validate:"gt=0"`
	ViewportHeight float64 `yaml:"viewportHeight" validate:"gt=0"`
	FitOnRebuild   bool    `yaml:"fitOnRebuild"`
}

// ProjectionConfig places the network on the world canvas
type ProjectionConfig struct {
	CenterLat    float64 `yaml:"centerLat" validate:"gte=-90,lte=90"`
	CenterLon    float64 `yaml:"centerLon" validate:"gte=-180,lte=180"`
	Scale        float64 `yaml:"scale" validate:"gt=0"`
	CanvasWidth  float64 `yaml:"canvasWidth" validate:"gt=0"`
	CanvasHeight float64 `yaml:"canvasHeight" validate:"gt=0"`
}

// GTFSRTConfig contains GTFS-Realtime feed configuration
type GTFSRTConfig struct {
	TripUpdatesURL string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
}

// SourcesConfig contains the external data providers used by the resolver
type SourcesConfig struct {
	// Topology is a GeoJSON file, a GTFS zip (path or URL) or a mongo db.coll.
	Topology             string       `yaml:"topology"`
	IncludeBuses         bool         `yaml:"includeBuses"`
	MongoURI             string       `yaml:"mongoURI" validate:"omitempty,uri"`
	ArrivalsURL          string       `yaml:"arrivalsURL" validate:"omitempty,url"`
	GTFSRT               GTFSRTConfig `yaml:"gtfsrt"`
	Lines                []string     `yaml:"lines" validate:"dive,required"`
	TimeoutMS            int          `yaml:"timeoutMS" validate:"gt=0"`
	PredictionCapSeconds float64      `yaml:"predictionCapSeconds" validate:"gt=0"`
	SampleFallback       bool         `yaml:"sampleFallback"`
	CacheDir             string       `yaml:"cacheDir"`
	MinSpacingKM         float64      `yaml:"minSpacingKM" validate:"gte=0"`
}

// SyntheticConfig contains procedural generator counts
type SyntheticConfig struct {
	TrainRoutes        int `yaml:"trainRoutes" validate:"gte=0,lte=10"`
	RadialBusRoutes    int `yaml:"radialBusRoutes" validate:"gte=0"`
	OrbitalBusRoutes   int `yaml:"orbitalBusRoutes" validate:"gte=0"`
	CrossTownBusRoutes int `yaml:"crossTownBusRoutes" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	LogLevel   string           `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error fatal panic"`
	LogFormat  string           `yaml:"logFormat" validate:"omitempty,oneof=text easy"`
	Simulation SimulationConfig `yaml:"simulation"`
	Camera     CameraConfig     `yaml:"camera"`
	Projection ProjectionConfig `yaml:"projection"`
	Sources    SourcesConfig    `yaml:"sources"`
	Synthetic  SyntheticConfig  `yaml:"synthetic"`
}
