package feature_test

import (
	"context"
	"testing"

	"github.com/aurorah/streamcore/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider_IsEnabled(t *testing.T) {
	p := feature.NewStaticProvider(map[string]bool{"continue_after_interrupt": true})

	enabled, err := p.IsEnabled(context.Background(), "continue_after_interrupt")
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestStaticProvider_UnknownFlag(t *testing.T) {
	p := feature.NewStaticProvider(nil)
	_, err := p.IsEnabled(context.Background(), "missing")
	assert.ErrorIs(t, err, feature.ErrFlagNotFound)
}

func TestStaticProvider_EmptyFlagName(t *testing.T) {
	p := feature.NewStaticProvider(nil)
	_, err := p.IsEnabled(context.Background(), "")
	assert.ErrorIs(t, err, feature.ErrInvalidFlag)
}
