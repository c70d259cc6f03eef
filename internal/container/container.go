package container

import (
	stderrors "errors"
	"fmt"

	"pharmarisk/adapters/artifact"
	"pharmarisk/app"
	"pharmarisk/domain/core"
	"pharmarisk/domain/inventory"
	"pharmarisk/internal"
	"pharmarisk/internal/config"
	"pharmarisk/internal/errors"
	"pharmarisk/internal/testkit"
	"pharmarisk/ports"
)

// MissingModelFormat is the operator-facing message when the artifact is absent
const MissingModelFormat = "Erro: O arquivo do modelo '%s' não foi encontrado. Execute o script de treinamento primeiro para salvar o modelo."

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	Classifier ports.Classifier
	TestKit    *testkit.TestKit
	Dashboard  *app.DashboardService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Container{Config: cfg, Logger: logger}, nil
}

// Initialize loads the classifier and wires the dashboard service
func (c *Container) Initialize() error {
	model, err := LoadClassifier(c.Config.Model.Path)
	if err != nil {
		return err
	}
	c.Classifier = model
	c.Logger.Info("loaded %s model from %s", model.Kind(), c.Config.Model.Path)

	c.initTestInfrastructure()
	c.Dashboard = app.NewDashboardService(c.Classifier, c.TestKit, c.TestKit.RNGAdapter(), c.Config.Data.Seed, c.Logger)
	return nil
}

// initTestInfrastructure builds the simulated inventory source
func (c *Container) initTestInfrastructure() {
	c.TestKit = testkit.NewTestKit(c.Config.Data.LotCount)
	if c.Config.Data.Seed != 0 {
		c.Logger.Info("mock inventory pinned to seed %d (%d lots)", c.Config.Data.Seed, c.TestKit.LotCount())
	}
}

// LoadClassifier turns a missing artifact into the operator-facing startup error
func LoadClassifier(path string) (ports.Classifier, error) {
	model, err := artifact.Load(path, inventory.FeatureNames)
	if stderrors.Is(err, core.ErrArtifactNotFound) {
		return nil, &errors.AppError{
			Code:    errors.CodeNotFound,
			Message: fmt.Sprintf(MissingModelFormat, path),
			Cause:   err,
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load model %s", path)
	}
	return model, nil
}
