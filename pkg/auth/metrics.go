package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts counts logins by outcome (success or failure).
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundboard_auth_login_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Registrations counts created accounts.
	Registrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fundboard_auth_registrations_total",
			Help: "Total number of registered accounts",
		},
	)
)
