// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

package httpapi

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.observeRegistration("ok")
	m.observeRegistration("conflict")
	m.observeLogin("rejected")
	m.observeTokenVerification("missing")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues("conflict")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LoginsTotal.WithLabelValues("rejected")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TokenVerificationsTotal.WithLabelValues("missing")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "authgate_registrations_total")
	assert.Contains(t, names, "authgate_logins_total")
	assert.Contains(t, names, "authgate_token_verifications_total")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.observeRegistration("ok")
		m.observeLogin("ok")
		m.observeTokenVerification("ok")
	})
}
