package constant

const (
	ProjectName = "displaymode"
	// EnvPrefix is the prefix of environment variables read by the config layer.
	EnvPrefix = "DISPLAYMODE"
	// RateTolerance is how far apart two refresh rates may be and still be
	// treated as the same rate.
	RateTolerance = 1.0
	// MainDisplay selects the main display wherever a display id is expected.
	MainDisplay uint32 = 0
)
