package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dwellio/pkg/config"
	apperrors "dwellio/pkg/errors"
	"dwellio/pkg/logger"
)

type fakeRunner struct {
	output []byte
	err    error

	gotInterpreter string
	gotScript      string
	gotArgs        []string
}

func (f *fakeRunner) Run(ctx context.Context, interpreter, script string, args ...string) ([]byte, error) {
	f.gotInterpreter = interpreter
	f.gotScript = script
	f.gotArgs = args
	return f.output, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		PredictScript:      "../ml/src/predict.py",
		PredictInterpreter: "python3",
		PredictTimeout:     5 * time.Second,
	}
}

func validRequest() *PriceRequest {
	return &PriceRequest{
		Location: "Whitefield",
		Sqft:     1200,
		Bath:     2,
		Bhk:      2,
	}
}

func TestPredictPrice_ParsesModelOutput(t *testing.T) {
	runner := &fakeRunner{output: []byte("84.52\n")}
	svc := NewPredictionServiceWithRunner(runner, testConfig())

	price, err := svc.PredictPrice(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 84.52 {
		t.Errorf("expected 84.52, got %v", price)
	}

	if runner.gotInterpreter != "python3" {
		t.Errorf("expected python3 interpreter, got %q", runner.gotInterpreter)
	}
	if runner.gotScript != "../ml/src/predict.py" {
		t.Errorf("unexpected script path %q", runner.gotScript)
	}
	wantArgs := []string{"Whitefield", "1200", "2", "2"}
	if len(runner.gotArgs) != len(wantArgs) {
		t.Fatalf("expected %d args, got %v", len(wantArgs), runner.gotArgs)
	}
	for i, want := range wantArgs {
		if runner.gotArgs[i] != want {
			t.Errorf("arg %d: expected %q, got %q", i, want, runner.gotArgs[i])
		}
	}
}

func TestPredictPrice_NonNumericOutput(t *testing.T) {
	runner := &fakeRunner{output: []byte("Traceback (most recent call last): ...")}
	svc := NewPredictionServiceWithRunner(runner, testConfig())

	_, err := svc.PredictPrice(context.Background(), validRequest())

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeUpstream {
		t.Errorf("expected UPSTREAM_ERROR, got %s", appErr.Code)
	}
	if appErr.StatusCode() != 502 {
		t.Errorf("expected status 502, got %d", appErr.StatusCode())
	}
}

func TestPredictPrice_RunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exec: python3 not found")}
	svc := NewPredictionServiceWithRunner(runner, testConfig())

	_, err := svc.PredictPrice(context.Background(), validRequest())

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeUpstream {
		t.Errorf("expected UPSTREAM_ERROR, got %s", appErr.Code)
	}
}

func TestPredictPrice_MissingParameters(t *testing.T) {
	svc := NewPredictionServiceWithRunner(&fakeRunner{output: []byte("1")}, testConfig())

	tests := []*PriceRequest{
		{Sqft: 1200, Bath: 2, Bhk: 2},
		{Location: "Whitefield", Bath: 2, Bhk: 2},
		{Location: "Whitefield", Sqft: 1200, Bhk: 2},
		{Location: "Whitefield", Sqft: 1200, Bath: 2},
	}

	for i, req := range tests {
		_, err := svc.PredictPrice(context.Background(), req)
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("case %d: expected INVALID_INPUT, got %s", i, appErr.Code)
		}
	}
}
