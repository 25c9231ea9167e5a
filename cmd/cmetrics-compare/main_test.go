package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandon-arrendondo/knots/internal/knotserr"
)

func TestValidateFlags_AcceptsDefaults(t *testing.T) {
	threshold, boundaryThreshold, level = 0.70, 0.80, "warn"

	err := validateFlags()

	require.NoError(t, err)
}

func TestValidateFlags_RejectsOutOfRangeThreshold(t *testing.T) {
	threshold, boundaryThreshold, level = 2.5, 0.80, "warn"
	defer func() { threshold = 0.70 }()

	err := validateFlags()

	require.Error(t, err)
	assert.True(t, knotserr.Is(err, knotserr.KindValidation))
}

func TestValidateFlags_RejectsOutOfRangeBoundaryThreshold(t *testing.T) {
	threshold, boundaryThreshold, level = 0.70, 1.5, "warn"
	defer func() { boundaryThreshold = 0.80 }()

	err := validateFlags()

	require.Error(t, err)
	assert.True(t, knotserr.Is(err, knotserr.KindValidation))
}

func TestValidateFlags_RejectsUnknownLevel(t *testing.T) {
	threshold, boundaryThreshold, level = 0.70, 0.80, "fatal"
	defer func() { level = "warn" }()

	err := validateFlags()

	require.Error(t, err)
	assert.True(t, knotserr.Is(err, knotserr.KindValidation))
}
