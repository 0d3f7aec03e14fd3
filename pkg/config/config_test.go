package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestGetDefaultConfig(t *testing.T) {
	RegisterTestingT(t)

	cfg := GetDefaultConfig()

	Expect(cfg.Port).To(Equal("8080"))
	Expect(cfg.DatabaseDriver).To(Equal("sqlite"))
	Expect(cfg.RateLimitEnabled).To(BeFalse())
	Expect(cfg.RateLimitWindow).To(Equal(time.Minute))
	Expect(cfg.RateLimitBatchRequests).To(Equal(10))
	Expect(cfg.IsProduction()).To(BeFalse())
}

func TestLoad_Environment(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_BATCH_REQUESTS", "2")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	Expect(err).To(BeNil())
	Expect(cfg.Port).To(Equal("9000"))
	Expect(cfg.DatabaseDriver).To(Equal("postgres"))
	Expect(cfg.RateLimitEnabled).To(BeTrue())
	Expect(cfg.RateLimitRequests).To(Equal(5))
	Expect(cfg.RateLimitWindow).To(Equal(30 * time.Second))
	Expect(cfg.RateLimitBatchRequests).To(Equal(2))
}

func TestLoad_EnvFile(t *testing.T) {
	RegisterTestingT(t)

	file := filepath.Join(t.TempDir(), "test.env")
	Expect(os.WriteFile(file, []byte("SERVICE_NAME=customers-test\n"), 0o600)).To(Succeed())
	t.Cleanup(func() { os.Unsetenv("SERVICE_NAME") })

	cfg, err := Load(file)

	Expect(err).To(BeNil())
	Expect(cfg.ServiceName).To(Equal("customers-test"))
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	Expect(err).To(HaveOccurred())
}

func TestLoad_InvalidBatchRateLimit(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_BATCH_REQUESTS", "0")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	Expect(err).To(MatchError(ContainSubstring("RATE_LIMIT_BATCH_REQUESTS")))
}
