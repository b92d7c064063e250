package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Defaults.
const (
	DefaultMappingFile = "mapping.json"
	DefaultBatchSize   = 250
	DefaultEnvFile     = ".env"
	DefaultHTTPTimeout = 30 * time.Second
)

// Settings is the validated configuration of one run.
type Settings struct {
	WorkdayReportURL string
	WorkdayAuthType  AuthType
	WorkdayAPIKey    Secret
	WorkdayUsername  string
	WorkdayPassword  Secret

	GleanBackendDomain string
	GleanAPIKey        Secret

	FieldMappingFile string
	OutputType       OutputType
	DataType         DataType
	BatchSize        int

	DebugMode    bool
	TestMode     TestMode
	TestDataFile string

	// OutputDir receives CSV files when no bucket is configured.
	OutputDir   string
	ObjectStore ObjectStore

	HTTPTimeout  time.Duration
	SyncSchedule string
	LogFormat    LogFormat
}

// ObjectStore locates the S3-compatible bucket that receives CSV exports.
type ObjectStore struct {
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey Secret
	Region    string
	UseSSL    bool
}

// Enabled reports whether CSV exports go to the bucket.
func (o ObjectStore) Enabled() bool { return o.Bucket != "" }

// FromEnv loads settings from the process environment, falling back to the
// .env file at envFile. A missing .env file is not an error.
func FromEnv(envFile string) (*Settings, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}

		dotenv = nil
	}

	return Load(Chain(os.LookupEnv, MapLookup(dotenv)))
}

// Load reads and validates settings from lookup.
func Load(lookup Lookup) (*Settings, error) {
	p := &problems{}

	s := &Settings{
		WorkdayReportURL:   lookup.String("WORKDAY_REPORT_URL", ""),
		WorkdayAPIKey:      Secret(lookup.String("WORKDAY_API_KEY", "")),
		WorkdayUsername:    lookup.String("WORKDAY_USERNAME", ""),
		WorkdayPassword:    Secret(lookup.String("WORKDAY_PASSWORD", "")),
		GleanBackendDomain: lookup.String("GLEAN_BACKEND_DOMAIN", ""),
		GleanAPIKey:        Secret(lookup.String("GLEAN_API_KEY", "")),
		FieldMappingFile:   lookup.String("FIELD_MAPPING_FILE", DefaultMappingFile),
		TestDataFile:       lookup.String("TEST_DATA_FILE", ""),
		OutputDir:          lookup.String("OUTPUT_DIR", "."),
		SyncSchedule:       lookup.String("SYNC_SCHEDULE", ""),
		ObjectStore: ObjectStore{
			Bucket:    lookup.String("OUTPUT_BUCKET", ""),
			Endpoint:  lookup.String("OBJECT_STORE_ENDPOINT", ""),
			AccessKey: lookup.String("OBJECT_STORE_ACCESS_KEY", ""),
			SecretKey: Secret(lookup.String("OBJECT_STORE_SECRET_KEY", "")),
			Region:    lookup.String("OBJECT_STORE_REGION", ""),
		},
	}

	var err error

	s.WorkdayAuthType, err = parseEnum("WORKDAY_AUTH_TYPE", lookup.String("WORKDAY_AUTH_TYPE", string(AuthBearer)),
		AuthBasic, AuthBearer)
	p.add(err)

	s.OutputType, err = parseEnum("OUTPUT_TYPE", lookup.String("OUTPUT_TYPE", string(OutputAPI)), OutputAPI, OutputCSV)
	p.add(err)

	s.DataType, err = parseEnum("DATA_TYPE", lookup.String("DATA_TYPE", string(DataPeople)), DataPeople, DataTeams)
	p.add(err)

	s.TestMode, err = parseEnum("TEST_MODE", lookup.String("TEST_MODE", ""), TestNone, TestPull, TestPush)
	p.add(err)

	s.LogFormat, err = parseEnum("LOG_FORMAT", lookup.String("LOG_FORMAT", string(LogText)), LogText, LogJSON)
	p.add(err)

	s.BatchSize, err = lookup.Int("BATCH_SIZE", DefaultBatchSize)
	p.add(err)

	s.DebugMode, err = lookup.Bool("DEBUG_MODE", false)
	p.add(err)

	s.ObjectStore.UseSSL, err = lookup.Bool("OBJECT_STORE_USE_SSL", true)
	p.add(err)

	s.HTTPTimeout, err = lookup.Duration("HTTP_TIMEOUT", DefaultHTTPTimeout)
	p.add(err)

	if len(p.list) > 0 {
		return nil, &ConfigurationError{Problems: p.list}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the settings required by the test mode and output type.
func (s *Settings) Validate() error {
	p := &problems{}

	if s.BatchSize <= 0 {
		p.addf("BATCH_SIZE must be greater than zero, got %d", s.BatchSize)
	}

	if s.HTTPTimeout <= 0 {
		p.addf("HTTP_TIMEOUT must be positive, got %s", s.HTTPTimeout)
	}

	switch s.TestMode {
	case TestPush:
		if s.TestDataFile == "" {
			p.addf("TEST_DATA_FILE is required when TEST_MODE is push")
		}

		s.validateGlean(p, " in push test mode")
	case TestPull:
		s.validateWorkday(p, " in pull test mode")
	default:
		s.validateWorkday(p, "")
		s.validateGlean(p, "")
	}

	if s.OutputType == OutputCSV && s.ObjectStore.Enabled() {
		if s.ObjectStore.Endpoint == "" {
			p.addf("OBJECT_STORE_ENDPOINT is required when OUTPUT_BUCKET is set")
		}
	}

	if len(p.list) > 0 {
		return &ConfigurationError{Problems: p.list}
	}

	return nil
}

func (s *Settings) validateWorkday(p *problems, suffix string) {
	if s.WorkdayReportURL == "" {
		p.addf("WORKDAY_REPORT_URL is required%s", suffix)
	} else if u, err := url.Parse(s.WorkdayReportURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		p.addf("WORKDAY_REPORT_URL must be an http(s) URL, got %q", s.WorkdayReportURL)
	}

	switch s.WorkdayAuthType {
	case AuthBasic:
		if s.WorkdayUsername == "" || !s.WorkdayPassword.IsSet() {
			p.addf("username and password are required for Workday basic authentication%s", suffix)
		}
	case AuthBearer:
		if !s.WorkdayAPIKey.IsSet() {
			p.addf("Workday API key is required for bearer authentication%s", suffix)
		}
	}
}

func (s *Settings) validateGlean(p *problems, suffix string) {
	// CSV runs never talk to the destination.
	if s.OutputType == OutputCSV {
		return
	}

	if s.GleanBackendDomain == "" || !s.GleanAPIKey.IsSet() {
		p.addf("GLEAN_BACKEND_DOMAIN and GLEAN_API_KEY are required%s", suffix)
	}
}

type problems struct {
	list []string
}

func (p *problems) add(err error) {
	if err != nil {
		p.list = append(p.list, err.Error())
	}
}

func (p *problems) addf(format string, args ...any) {
	p.list = append(p.list, fmt.Sprintf(format, args...))
}
