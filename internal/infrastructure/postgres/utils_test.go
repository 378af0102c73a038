package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rectificadora-api/internal/infrastructure/postgres"
)

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"cancelado", context.Canceled, false},
		{"conexión caída", &pgconn.PgError{Code: "08006"}, true},
		{"servidor apagándose", &pgconn.PgError{Code: "57P01"}, true},
		{"violación de unicidad", &pgconn.PgError{Code: "23505"}, false},
		{"sintaxis", &pgconn.PgError{Code: "42601"}, false},
		{"error de red envuelto", fmt.Errorf("listar motores: %w", &net.OpError{Op: "dial", Err: errors.New("connection refused")}), true},
		{"error cualquiera", errors.New("datos corruptos"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, postgres.IsTransient(tc.err))
		})
	}
}
