package service

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"dwellio/pkg/config"
	apperrors "dwellio/pkg/errors"
)

// PriceRequest carries the features the price model was trained on.
type PriceRequest struct {
	Location string  `json:"location"`
	Sqft     float64 `json:"sqft"`
	Bath     int     `json:"bath"`
	Bhk      int     `json:"bhk"`
}

// ScriptRunner executes the model script and returns its stdout.
// Extracted so tests can run without a Python toolchain.
type ScriptRunner interface {
	Run(ctx context.Context, interpreter, script string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, interpreter, script string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, interpreter, append([]string{script}, args...)...)
	return cmd.Output()
}

type PredictionService interface {
	PredictPrice(ctx context.Context, req *PriceRequest) (float64, error)
}

type predictionService struct {
	runner ScriptRunner
	cfg    *config.Config
}

func NewPredictionService(cfg *config.Config) PredictionService {
	return NewPredictionServiceWithRunner(execRunner{}, cfg)
}

func NewPredictionServiceWithRunner(runner ScriptRunner, cfg *config.Config) PredictionService {
	return &predictionService{
		runner: runner,
		cfg:    cfg,
	}
}

func (s *predictionService) PredictPrice(ctx context.Context, req *PriceRequest) (float64, error) {
	if req.Location == "" || req.Sqft <= 0 || req.Bath <= 0 || req.Bhk <= 0 {
		return 0, apperrors.InvalidInput("location, sqft, bath and bhk are all required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.PredictTimeout)
	defer cancel()

	output, err := s.runner.Run(ctx, s.cfg.PredictInterpreter, s.cfg.PredictScript,
		req.Location,
		strconv.FormatFloat(req.Sqft, 'f', -1, 64),
		strconv.Itoa(req.Bath),
		strconv.Itoa(req.Bhk),
	)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			s.cfg.Log.Error("Price model exited with error",
				"script", s.cfg.PredictScript,
				"stderr", string(exitErr.Stderr),
			)
		} else {
			s.cfg.Log.Error("Failed to run price model",
				"script", s.cfg.PredictScript,
				"error", err,
			)
		}
		return 0, apperrors.Upstream("price model", err)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		s.cfg.Log.Error("Price model produced non-numeric output",
			"script", s.cfg.PredictScript,
			"output", strings.TrimSpace(string(output)),
		)
		return 0, apperrors.Upstream("price model", fmt.Errorf("non-numeric output: %w", err))
	}

	s.cfg.Log.Debug("Price predicted",
		"location", req.Location,
		"sqft", req.Sqft,
		"price", price,
	)

	return price, nil
}
