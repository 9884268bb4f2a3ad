package envvar

const (
	// CnstdEnv is the environment variable used to determine the runtime environment
	CnstdEnv = "CNSTD_ENV"

	// CnstdHome is the environment variable that overrides the data root directory
	CnstdHome = "CNSTD_HOME"
)
