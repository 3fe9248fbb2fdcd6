package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	Mode string
	Port string

	// Provider configuration
	NewsAPIKey      string
	Category        string
	Country         string
	Language        string
	PageSize        int
	FetchInterval   int
	SourcesInterval int
	Once            bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
