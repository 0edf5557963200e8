package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port         string
	SourcesFile  string
	APIAccessKey string

	// Ingestion configuration
	FullSyncInterval int // hours
	RSSSyncInterval  int // minutes
	PublishInterval  int // seconds
	SourceDelay      int // seconds
	HTTPTimeout      int // seconds
	AutoSync         bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
