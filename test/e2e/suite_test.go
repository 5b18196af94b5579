package e2e

import (
	"context"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/wesleyorama2/diaries/internal/config"
	"github.com/wesleyorama2/diaries/internal/diaries"
	"github.com/wesleyorama2/diaries/internal/diariestest"
	"github.com/wesleyorama2/diaries/internal/http"
	"github.com/wesleyorama2/diaries/internal/logger"
)

var (
	api    *diaries.API
	ctx    context.Context
	cfg    *config.Config
	server *httptest.Server
)

var _ = BeforeSuite(func() {
	var err error
	cfg, err = config.Load(config.Options{EnvFiles: []string{".env"}})
	Expect(err).NotTo(HaveOccurred())

	log := logger.NewWithWriter("debug", GinkgoWriter)

	baseURL := cfg.BaseURL
	insecure := cfg.InsecureSkipVerify
	if !cfg.E2ERemote {
		server = diariestest.New(diariestest.WithLogger(log.Named("service"))).StartTLS()
		baseURL = server.URL
		insecure = true
	}
	log.Info("running scenarios", zap.String("base_url", baseURL), zap.Bool("remote", cfg.E2ERemote))

	api = diaries.NewAPI(http.NewClient(
		http.WithBaseURL(baseURL),
		http.WithTimeout(cfg.RequestTimeout),
		http.WithInsecureSkipVerify(insecure),
		http.WithLogger(log.Named("client")),
	))
})

var _ = AfterSuite(func() {
	if server != nil {
		server.Close()
	}
})

var _ = BeforeEach(func() {
	ctx = context.Background()
})

func TestE2E(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Diaries E2E Suite")
}
