package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bnema/roombook-cli/internal/adapters/iplookup"
	outcomeadapter "github.com/bnema/roombook-cli/internal/adapters/render/outcome"
	tomlrepo "github.com/bnema/roombook-cli/internal/adapters/repo/toml"
	"github.com/bnema/roombook-cli/internal/adapters/supplier"
	"github.com/bnema/roombook-cli/internal/application"
	"github.com/bnema/roombook-cli/internal/config"
	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/bnema/roombook-cli/internal/logging"
	"github.com/bnema/roombook-cli/internal/ports"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type app struct {
	cfg              config.Config
	sessions         ports.SessionRepository
	supplier         ports.SupplierAPI
	ipLookup         ports.IPLookup
	logger           *logrus.Logger
	outcomeRenderer  func(domain.Outcome, outcomeadapter.RenderOptions) (string, error)
	quoteRenderer    func(application.Quote, outcomeadapter.RenderOptions) (string, error)
	sessionsRenderer func([]domain.SessionSnapshot, outcomeadapter.RenderOptions) (string, error)
	now              func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	httpClient := &http.Client{}

	return &app{
		cfg:      cfg,
		sessions: repo,
		supplier: supplier.Client{
			BaseURL:        cfg.APIBaseURL,
			HTTPClient:     httpClient,
			RequestTimeout: cfg.RequestTimeout,
		},
		ipLookup:         iplookup.Client{URL: cfg.IPLookupURL, HTTPClient: httpClient},
		logger:           logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat),
		outcomeRenderer:  outcomeadapter.RenderOutcome,
		quoteRenderer:    outcomeadapter.RenderQuote,
		sessionsRenderer: outcomeadapter.RenderSessions,
		now:              time.Now,
	}, nil
}

// bookingService builds the service for one command. redirector may be nil when
// the command never polls.
func (a *app) bookingService(redirector ports.ThreeDSRedirector, returnBaseURL string) *application.BookingService {
	return application.NewBookingService(
		a.supplier,
		a.sessions,
		a.ipLookup,
		redirector,
		ports.SystemClock{},
		a.logger,
		application.Config{
			Language:          a.cfg.Language,
			ReturnBaseURL:     returnBaseURL,
			PollInterval:      a.cfg.PollInterval,
			PollBudget:        a.cfg.PollBudget,
			NotFoundGrace:     a.cfg.NotFoundGrace,
			RegistrationDelay: a.cfg.RegistrationDelay,
			ArrivalHour:       a.cfg.ArrivalHour,
		},
	)
}

func (a *app) setLogOutput(w io.Writer) {
	a.logger.SetOutput(w)
}
