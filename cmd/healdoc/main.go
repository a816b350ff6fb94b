package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/arun-kumar-js/heal-doc/internal/api"
	"github.com/arun-kumar-js/heal-doc/internal/appointment"
	"github.com/arun-kumar-js/heal-doc/internal/auth"
	"github.com/arun-kumar-js/heal-doc/internal/availability"
	"github.com/arun-kumar-js/heal-doc/internal/config"
	"github.com/arun-kumar-js/heal-doc/internal/dashboard"
	"github.com/arun-kumar-js/heal-doc/internal/doctor"
	"github.com/arun-kumar-js/heal-doc/internal/logging"
	"github.com/arun-kumar-js/heal-doc/internal/session"
	"github.com/arun-kumar-js/heal-doc/internal/storage"
	"github.com/arun-kumar-js/heal-doc/internal/telemetry"
	"github.com/arun-kumar-js/heal-doc/internal/theme"
)

const usage = `usage: healdoc <command> [args]

commands:
  login <username> <password>   sign in and store the session
  logout                        clear the local session
  profile                       show the resolved doctor profile
  update-profile <name>         update the doctor's display name
  dashboard                     today's totals and scheduled visits
  appointments [all|scheduled|completed]
                                the full appointment list
  delay <appointment-id> <hh:mm>
                                push an appointment back
  unavailable <reason> <start> <end>
                                mark unavailable for a date range
  available                     mark available again
  theme                         toggle dark mode
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load(os.Getenv("HEALDOC_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.New("healdoc", cfg.Pretty)

	ctx := context.Background()

	var metrics *telemetry.Metrics
	if cfg.Telemetry {
		provider, err := telemetry.InitProvider(ctx, telemetry.DefaultConfig(cfg.OTLPEndpoint), log)
		if err != nil {
			log.Warn().Err(err).Msg("telemetry init failed, continuing without it")
		} else {
			defer provider.Shutdown(ctx)
			if metrics, err = telemetry.InitMetrics(); err != nil {
				log.Warn().Err(err).Msg("metrics init failed")
			}
		}
	}

	kv, err := storage.OpenBolt(cfg.StoragePath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.StoragePath).Msg("failed to open local store")
		os.Exit(1)
	}
	defer kv.Close()

	app := newApp(cfg, kv, log, metrics)
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Error().Err(err).Msg(os.Args[1] + " failed")
		os.Exit(1)
	}
}

type app struct {
	sessions     *session.Store
	auth         *auth.Service
	doctor       *doctor.Service
	dashboard    *dashboard.Service
	appointments *appointment.Service
	availability *availability.Service
	theme        *theme.Manager
}

func newApp(cfg config.Config, kv storage.Store, log zerolog.Logger, metrics *telemetry.Metrics) *app {
	client := api.NewClient(cfg.BaseURL, cfg.RequestTimeout, log, metrics)
	sessions := session.NewStore(kv, log)
	if token, ok := sessions.AuthToken(); ok {
		client.SetAuthToken(token)
	}
	docs := doctor.NewService(client, sessions, log)
	return &app{
		sessions:     sessions,
		auth:         auth.NewService(client, sessions, log),
		doctor:       docs,
		dashboard:    dashboard.NewService(client, docs, log, metrics),
		appointments: appointment.NewService(client, log, metrics),
		availability: availability.NewService(client, kv, log, metrics),
		theme:        theme.NewManager(kv, log),
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("login needs <username> <password>")
		}
		sess, err := a.auth.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", sess.Username)
		return nil

	case "logout":
		return a.auth.Logout(ctx)

	case "profile":
		profile, err := a.doctor.Resolve(ctx)
		if err != nil {
			return err
		}
		return printJSON(profile)

	case "update-profile":
		if len(args) != 1 {
			return fmt.Errorf("update-profile needs <name>")
		}
		doctorID, _ := a.sessions.DoctorID()
		profile, err := a.doctor.Update(ctx, doctorID, doctor.UpdateRequest{Name: args[0]})
		if err != nil {
			return err
		}
		return printJSON(profile)

	case "dashboard":
		doctorID, _ := a.sessions.DoctorID()
		snap, err := a.dashboard.Fetch(ctx, doctorID)
		if err != nil {
			return err
		}
		if snap.Degraded {
			fmt.Println("offline: showing fallback totals")
		}
		return printJSON(snap)

	case "appointments":
		doctorID, _ := a.sessions.DoctorID()
		list, err := a.appointments.Fetch(ctx, doctorID)
		if err != nil {
			return err
		}
		filter := appointment.FilterAll
		if len(args) > 0 {
			switch args[0] {
			case "all":
			case "scheduled":
				filter = appointment.FilterScheduled
			case "completed":
				filter = appointment.FilterCompleted
			default:
				return fmt.Errorf("unknown filter %q", args[0])
			}
		}
		return printJSON(appointment.ApplyFilter(list, filter))

	case "delay":
		if len(args) != 2 {
			return fmt.Errorf("delay needs <appointment-id> <hh:mm>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad appointment id %q", args[0])
		}
		return a.appointments.UpdateDelay(ctx, id, args[1])

	case "unavailable":
		if len(args) != 3 {
			return fmt.Errorf("unavailable needs <reason> <start> <end>")
		}
		doctorID, _ := a.sessions.DoctorID()
		state, err := a.availability.MarkUnavailable(ctx, availability.Request{
			Reason:    args[0],
			StartDate: args[1],
			EndDate:   args[2],
			DoctorID:  doctorID,
		})
		if err != nil {
			return err
		}
		return printJSON(state)

	case "available":
		state, err := a.availability.MarkAvailable(ctx)
		if err != nil {
			return err
		}
		return printJSON(state)

	case "theme":
		dark, err := a.theme.Toggle()
		if err != nil {
			return err
		}
		if dark {
			fmt.Println("dark mode on")
		} else {
			fmt.Println("dark mode off")
		}
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
