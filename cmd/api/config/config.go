// Package config loads runtime configuration from environment variables
// with sensible defaults for local development.
package config

import (
	"fmt"
	"strings"
	"time"

	"hadron_scholar_backend/internal/ingest"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	AllowedOrigins []string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	TokenTTL  time.Duration

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string

	ArxivCategories []string
	ArxivKeywords   []string
	MaxResults      int
	LookbackDays    int

	JournalFeeds []ingest.JournalFeed
	FilterHadron bool
	HadronTerms  []string

	Vocabulary []string

	DigestHour int
}

// defaultVocabulary is the fixed physics term list the tagger matches
// against paper titles and abstracts.
var defaultVocabulary = []string{
	"hadron", "quark", "gluon", "meson", "baryon", "qcd", "lattice",
	"pion", "kaon", "proton", "neutron", "nucleon", "parton",
	"confinement", "chiral", "symmetry", "scattering", "decay",
	"cross-section", "form factor", "pdf", "gpd", "tmd",
	"drell-yan", "deep inelastic", "fragmentation", "jet",
	"heavy quark", "charm", "bottom", "charmonium", "bottomonium",
	"exotic", "tetraquark", "pentaquark", "glueball", "hybrid",
	"effective field theory", "eft", "perturbative", "non-perturbative",
	"renormalization", "factorization", "resummation",
	"collider", "lhc", "rhic", "electron-ion", "eic",
	"qgp", "quark-gluon plasma", "heavy-ion", "nuclear",
}

// defaultJournalFeeds lists the journal RSS sources polled on every
// ingestion run.
var defaultJournalFeeds = []ingest.JournalFeed{
	{Key: "phys_rev_d", Name: "Physical Review D", URL: "https://feeds.aps.org/rss/recent/prd.xml"},
	{Key: "phys_rev_lett", Name: "Physical Review Letters", URL: "https://feeds.aps.org/rss/recent/prl.xml"},
	{Key: "phys_rev_c", Name: "Physical Review C", URL: "https://feeds.aps.org/rss/recent/prc.xml"},
	{Key: "ptep", Name: "PTEP", URL: "https://academic.oup.com/rss/site_5322/3258.xml"},
	{Key: "epjc", Name: "European Physical Journal C", URL: "https://link.springer.com/search.rss?facet-content-type=Article&facet-journal-id=10052&channel-name=The+European+Physical+Journal+C"},
}

// Load reads configuration from the environment via viper.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "hadron_scholar")

	v.SetDefault("JWT_SECRET", "dev-secret-change-in-production")
	v.SetDefault("TOKEN_TTL_HOURS", 72)

	v.SetDefault("MAIL_HOST", "smtp.gmail.com")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("MAIL_USERNAME", "")
	v.SetDefault("MAIL_PASSWORD", "")
	v.SetDefault("MAIL_FROM", "noreply@hadronscholar.org")

	v.SetDefault("ARXIV_CATEGORIES", "hep-ph,hep-th,hep-lat,nucl-th")
	v.SetDefault("ARXIV_KEYWORDS", "hadron,QCD,quark,gluon,meson,baryon")
	v.SetDefault("ARXIV_MAX_RESULTS", 100)
	v.SetDefault("LOOKBACK_DAYS", 7)

	v.SetDefault("FILTER_HADRON", true)
	v.SetDefault("DIGEST_HOUR", 8)

	cfg := &Config{
		Port:           v.GetString("PORT"),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),

		JWTSecret: v.GetString("JWT_SECRET"),
		TokenTTL:  time.Duration(v.GetInt("TOKEN_TTL_HOURS")) * time.Hour,

		MailHost:     v.GetString("MAIL_HOST"),
		MailPort:     v.GetInt("MAIL_PORT"),
		MailUsername: v.GetString("MAIL_USERNAME"),
		MailPassword: v.GetString("MAIL_PASSWORD"),
		MailFrom:     v.GetString("MAIL_FROM"),

		ArxivCategories: splitList(v.GetString("ARXIV_CATEGORIES")),
		ArxivKeywords:   splitList(v.GetString("ARXIV_KEYWORDS")),
		MaxResults:      v.GetInt("ARXIV_MAX_RESULTS"),
		LookbackDays:    v.GetInt("LOOKBACK_DAYS"),

		JournalFeeds: defaultJournalFeeds,
		FilterHadron: v.GetBool("FILTER_HADRON"),
		HadronTerms:  splitList(v.GetString("ARXIV_KEYWORDS")),

		Vocabulary: defaultVocabulary,

		DigestHour: v.GetInt("DIGEST_HOUR"),
	}

	if cfg.DigestHour < 0 || cfg.DigestHour > 23 {
		return nil, fmt.Errorf("DIGEST_HOUR must be between 0 and 23, got %d", cfg.DigestHour)
	}

	return cfg, nil
}

// DSN assembles the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
