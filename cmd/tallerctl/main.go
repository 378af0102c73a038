// tallerctl es un cliente de línea de comandos de la API de la rectificadora.
//
// Uso:
//
//	tallerctl [--url URL] [--token TOKEN] <comando> [args]
//
// Comandos:
//
//	login <usuario> <password>        imprime el token
//	motores [estado]                  lista los motores activos
//	motor <id>                        detalle del motor (reintenta si la API no responde)
//	resumen <id>                      resumen confirmado
//	trabajo <id> <descripcion> <precio>  registra un trabajo y lo reenvía hasta confirmarlo
//	exportar <id> [telefono]          genera el PDF y el enlace de WhatsApp
//
// La URL y el token también se leen de TALLERCTL_URL y TALLERCTL_TOKEN.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jhoicas/rectificadora-api/internal/application/dto"
	"github.com/jhoicas/rectificadora-api/pkg/retry"
	"github.com/jhoicas/rectificadora-api/pkg/tallerclient"
)

func main() {
	flags := pflag.NewFlagSet("tallerctl", pflag.ExitOnError)
	flags.String("url", "http://localhost:5000", "URL base de la API")
	flags.String("token", "", "token JWT (si la API exige autenticación)")
	flags.Int("max-envios", tallerclient.DefaultMaxSends, "envíos por trabajo antes de darlo por fallido")
	flags.Bool("verbose", false, "mostrar reintentos")
	_ = flags.Parse(os.Args[1:])

	v := viper.New()
	v.SetEnvPrefix("TALLERCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	level := zerolog.WarnLevel
	if v.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	args := flags.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "uso: tallerctl [--url URL] [--token TOKEN] <login|motores|motor|resumen|trabajo|exportar> [args]")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client := tallerclient.New(v.GetString("url"),
		tallerclient.WithToken(v.GetString("token")),
		tallerclient.WithMaxSends(v.GetInt("max-envios")),
		tallerclient.WithRetryObserver(func(s retry.State) {
			log.Debug().Int("intento", s.Attempt).Dur("espera", s.NextDelay).Err(s.LastErr).Msg("reintentando")
		}),
	)

	out, err := run(ctx, client, args)
	if err != nil {
		var apiErr *tallerclient.APIError
		if errors.As(err, &apiErr) {
			log.Error().Int("status", apiErr.Status).Str("code", apiErr.Code).Msg(apiErr.Message)
		} else {
			log.Error().Err(err).Msg("error")
		}
		os.Exit(1)
	}
	if out != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	}
}

func run(ctx context.Context, c *tallerclient.Client, args []string) (any, error) {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		if len(rest) != 2 {
			return nil, errors.New("uso: login <usuario> <password>")
		}
		var tok dto.LoginResponse
		if err := c.Login(ctx, rest[0], rest[1]); err != nil {
			return nil, err
		}
		tok.Token = c.Token()
		return tok, nil
	case "motores":
		estado := ""
		if len(rest) > 0 {
			estado = rest[0]
		}
		return c.ListMotores(ctx, estado)
	case "motor", "resumen":
		id, err := motorID(rest)
		if err != nil {
			return nil, err
		}
		if cmd == "motor" {
			return c.FetchMotor(ctx, id)
		}
		return c.Resumen(ctx, id)
	case "trabajo":
		if len(rest) != 3 {
			return nil, errors.New("uso: trabajo <id> <descripcion> <precio>")
		}
		id, err := motorID(rest)
		if err != nil {
			return nil, err
		}
		in := dto.CreateWorkEntryRequest{Descripcion: rest[1]}
		if d, err := decimal.NewFromString(rest[2]); err == nil {
			in.Precio = dto.NewAmount(d)
		}
		return addUntilSettled(ctx, c, id, in)
	case "exportar":
		id, err := motorID(rest)
		if err != nil {
			return nil, err
		}
		in := dto.ExportRequest{}
		if len(rest) > 1 {
			in.Telefono = rest[1]
		}
		return c.Exportar(ctx, id, in)
	default:
		return nil, fmt.Errorf("comando desconocido %q", cmd)
	}
}

// addUntilSettled registra el trabajo y vacía la cola con backoff hasta que el
// servidor lo confirme o se agoten los envíos.
func addUntilSettled(ctx context.Context, c *tallerclient.Client, motorID int64, in dto.CreateWorkEntryRequest) (*tallerclient.PendingWork, error) {
	p, _ := c.AddTrabajo(ctx, motorID, in)
	for attempt := 1; p.Status == tallerclient.StatusSpeculative; attempt++ {
		select {
		case <-ctx.Done():
			return p, ctx.Err()
		case <-time.After(retry.DefaultPolicy.Delay(attempt)):
		}
		if _, err := c.Flush(ctx); err != nil {
			return p, err
		}
		p = c.Pending().Get(p.LocalID)
	}
	if p.Status == tallerclient.StatusFailed {
		return p, fmt.Errorf("trabajo no confirmado tras %d envíos: %s", p.Sends, p.LastError)
	}
	return p, nil
}

func motorID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("falta el id del motor")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id de motor inválido %q", args[0])
	}
	return id, nil
}
