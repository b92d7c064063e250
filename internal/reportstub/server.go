package reportstub

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// DefaultUsername is the basic-auth user accepted when none is configured.
const DefaultUsername = "workdayuser"

var sampleFiles = map[string]string{
	"":                 "sample_data.json",
	"teams":            "sample_data_teams.json",
	"additionalfields": "sample_data_additionalfields.json",
}

// Config locates the credentials and sample reports.
type Config struct {
	Username   string
	SecretFile string
	// DataDir holds the sample_data*.json files.
	DataDir string
}

// Server is the stub report endpoint.
type Server struct {
	cfg    Config
	logger *slog.Logger

	secretOnce sync.Once
	secret     string
	secretErr  error
}

func New(cfg Config, logger *slog.Logger) *Server {
	if cfg.Username == "" {
		cfg.Username = DefaultUsername
	}

	return &Server{cfg: cfg, logger: logger}
}

// Router returns the gin engine serving the stub.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/report", s.authenticate, s.getReport)

	return r
}

func (s *Server) loadSecret() (string, error) {
	s.secretOnce.Do(func() {
		b, err := os.ReadFile(s.cfg.SecretFile)
		if err != nil {
			s.secretErr = err
			return
		}

		s.secret = strings.TrimSpace(string(b))
	})

	return s.secret, s.secretErr
}

func (s *Server) authenticate(c *gin.Context) {
	if !s.authorized(c.GetHeader("Authorization")) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.Next()
}

func (s *Server) authorized(header string) bool {
	scheme, credentials, ok := strings.Cut(header, " ")
	if !ok {
		return false
	}

	secret, err := s.loadSecret()
	if err != nil {
		s.logger.Error("read secret", "path", s.cfg.SecretFile, "error", err)
		return false
	}

	switch strings.ToLower(scheme) {
	case "basic":
		decoded, err := base64.StdEncoding.DecodeString(credentials)
		if err != nil {
			return false
		}

		user, pass, ok := strings.Cut(string(decoded), ":")

		return ok && equal(user, s.cfg.Username) && equal(pass, secret)
	case "bearer":
		return equal(credentials, secret)
	default:
		return false
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

type reportQuery struct {
	Format string `form:"format" json:"format"`
	Report string `form:"report" json:"report"`
}

func (s *Server) getReport(c *gin.Context) {
	var q reportQuery

	// A JSON body takes precedence over the query string.
	if c.Request.ContentLength > 0 {
		if err := json.NewDecoder(c.Request.Body).Decode(&q); err != nil {
			s.logger.Debug("ignoring malformed report request body", "error", err)
			q = reportQuery{}
		}
	}

	if q.Format == "" {
		_ = c.ShouldBindQuery(&q)
	}

	if q.Format == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing format parameter. Add ?format=json to URL."})
		return
	}

	name, ok := sampleFiles[q.Report]
	if !ok {
		name = sampleFiles[""]
	}

	data, err := os.ReadFile(filepath.Join(s.cfg.DataDir, name))
	if err != nil || !json.Valid(data) {
		s.logger.Error("load sample data", "file", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading sample data"})

		return
	}

	c.Data(http.StatusOK, "application/json", data)
}
