//go:build wireinject
// +build wireinject

package di

import (
	"Horary/pkg/config"
	"Horary/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideGeocodeCache,
		ProvideGeocoder,
		ProvideEphemeris,

		// Engine
		ProvideCalculator,
		ProvideQuestionAnalyzer,
		ProvideJudge,

		// Use cases
		ProvideJudgmentService,

		// Application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
