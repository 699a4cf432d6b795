package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterJobs(t *testing.T) {
	mgr := NewCronManager(nil, "")
	require.NoError(t, mgr.RegisterJobs())
	assert.Equal(t, 1, mgr.Entries())
}

func TestRegisterJobs_InvalidSpec(t *testing.T) {
	mgr := NewCronManager(nil, "not a cron spec")
	assert.Error(t, mgr.RegisterJobs())
}
