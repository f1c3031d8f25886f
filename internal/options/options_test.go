package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type solverConfig struct {
	Cost     float64
	Pruning  bool
	Label    string
	LastCall string
}

func (c *solverConfig) SetCost(v float64) error {
	if v < 0 {
		return errors.New("cost cannot be negative")
	}
	c.Cost = v
	c.LastCall = "SetCost"

	return nil
}

func (c *solverConfig) Validate() error {
	if c.Label == "" {
		return errors.New("label is required")
	}

	return nil
}

func withCost(v float64) Option[*solverConfig] {
	return New(func(c *solverConfig) error { return c.SetCost(v) })
}

func withLabel(label string) Option[*solverConfig] {
	return NoError(func(c *solverConfig) {
		c.Label = label
		c.LastCall = "withLabel"
	})
}

func TestOption_New(t *testing.T) {
	t.Run("applies value", func(t *testing.T) {
		cfg := &solverConfig{}
		require.NoError(t, withCost(2.5).apply(cfg))
		require.Equal(t, 2.5, cfg.Cost)
		require.Equal(t, "SetCost", cfg.LastCall)
	})

	t.Run("propagates error", func(t *testing.T) {
		cfg := &solverConfig{}
		err := withCost(-1).apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "cost cannot be negative")
	})
}

func TestOption_NoError(t *testing.T) {
	cfg := &solverConfig{}
	opt := NoError(func(c *solverConfig) { c.Pruning = true })

	require.NoError(t, opt.apply(cfg))
	require.True(t, cfg.Pruning)
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &solverConfig{}
		err := Apply(cfg, withCost(1), withLabel("a"), withCost(3))
		require.NoError(t, err)
		require.Equal(t, 3.0, cfg.Cost)
		require.Equal(t, "a", cfg.Label)
		require.Equal(t, "SetCost", cfg.LastCall)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &solverConfig{}
		err := Apply(cfg, withCost(5), withCost(-1), withLabel("skipped"))
		require.Error(t, err)
		require.Equal(t, 5.0, cfg.Cost)
		require.Empty(t, cfg.Label)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &solverConfig{}
		require.NoError(t, Apply(cfg, nil, withLabel("x")))
		require.Equal(t, "x", cfg.Label)
	})

	t.Run("empty", func(t *testing.T) {
		cfg := &solverConfig{}
		require.NoError(t, Apply(cfg))
		require.Zero(t, cfg.Cost)
	})
}

func TestApplyAndValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &solverConfig{}
		require.NoError(t, ApplyAndValidate(cfg, withLabel("ok")))
	})

	t.Run("validation failure", func(t *testing.T) {
		cfg := &solverConfig{}
		err := ApplyAndValidate(cfg, withCost(1))
		require.EqualError(t, err, "label is required")
	})

	t.Run("option failure wins over validation", func(t *testing.T) {
		cfg := &solverConfig{}
		err := ApplyAndValidate(cfg, withCost(-2))
		require.EqualError(t, err, "cost cannot be negative")
	})
}
