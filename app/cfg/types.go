package cfg

type Cfg struct {
	// Application configuration
	ListingsDir  string
	Port         string
	DBPath       string
	WorkerCount  int
	FetchTimeout int
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
