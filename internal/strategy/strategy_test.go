package strategy

import (
	"errors"
	"testing"

	"robosweep/internal/domain"
)

// stubStrategy is a minimal Strategy implementation used in registry tests.
type stubStrategy struct {
	name string
}

func (s *stubStrategy) Name() string                              { return s.name }
func (s *stubStrategy) Warmup() int                               { return 0 }
func (s *stubStrategy) Evaluate(_ *domain.Series) []domain.Signal { return nil }

func stubFactory(name string) Factory {
	return func(_ map[string]float64) (Strategy, error) {
		return &stubStrategy{name: name}, nil
	}
}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()
	r.Register("test-strategy", []string{"a"}, stubFactory("test-strategy"))

	got, err := r.Create("test-strategy", nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got.Name() != "test-strategy" {
		t.Errorf("Create returned strategy with Name() = %q, want %q", got.Name(), "test-strategy")
	}
}

func TestRegistryCreate_Unknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Create("nonexistent", nil)
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Create error = %v, want ErrUnknownStrategy", err)
	}
}

func TestRegistryParamNames(t *testing.T) {
	r := NewRegistry()
	r.Register("alpha", []string{"x", "y"}, stubFactory("alpha"))

	names, ok := r.ParamNames("alpha")
	if !ok {
		t.Fatal("ParamNames returned false for registered family")
	}
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("ParamNames = %v, want [x y]", names)
	}
	if _, ok := r.ParamNames("beta"); ok {
		t.Error("ParamNames returned true for unregistered family")
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register("beta", nil, stubFactory("beta"))
	r.Register("alpha", nil, stubFactory("alpha"))

	names := r.List()
	if len(names) != 2 {
		t.Fatalf("List returned %d names, want 2", len(names))
	}
	// List returns sorted names.
	if names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("List returned %v, want [alpha beta]", names)
	}
}

func TestIntParam(t *testing.T) {
	params := map[string]float64{"whole": 5, "frac": 5.5}

	if n, err := IntParam(params, "whole"); err != nil || n != 5 {
		t.Errorf("IntParam(whole) = %d, %v, want 5, nil", n, err)
	}
	if _, err := IntParam(params, "frac"); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("IntParam(frac) error = %v, want ErrInvalidParams", err)
	}
	if _, err := IntParam(params, "missing"); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("IntParam(missing) error = %v, want ErrInvalidParams", err)
	}
}
