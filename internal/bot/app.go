package bot

import (
	"context"

	"github.com/jmoiron/sqlx"

	"astrobot/core/bootstrap"
	tg "astrobot/core/telegram"
	"astrobot/core/telegram/commands"
	"astrobot/core/telegram/router"
	appconfig "astrobot/internal/config"
	"astrobot/internal/history"
	"astrobot/internal/nasa"
	"astrobot/internal/session"
)

// App owns the assembled bot: configuration, database handle, handlers, and
// the command/callback registry.
type App struct {
	cfg      *appconfig.Config
	db       *sqlx.DB
	handlers *Handlers
	registry *tg.Registry
}

// NewApp bootstraps infrastructure and wires the bot together.
func NewApp(cfg *appconfig.Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	client := nasa.NewClient(cfg.NASA.APIKey)
	handlers := NewHandlers(
		Services{
			Pictures: client,
			Earth:    client,
			Rovers:   client,
			Images:   client,
		},
		session.NewStore(),
		history.NewStore(res.DB),
	)

	return &App{
		cfg:      cfg,
		db:       res.DB,
		handlers: handlers,
		registry: buildRegistry(handlers),
	}, nil
}

func buildRegistry(h *Handlers) *tg.Registry {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Start the bot",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.Help,
		Description: "Show available commands",
	})
	reg.RegisterCommand("/apod", commands.Command{
		Handler:     h.PictureOfDay,
		Description: "Astronomy Picture of the Day",
	})
	reg.RegisterCommand("/epic", commands.Command{
		Handler:     h.EarthImagery,
		Description: "Earth Polychromatic Imaging Camera photos",
	})
	reg.RegisterCommand("/rover", commands.Command{
		Handler:     h.RoverPhotos,
		Description: "Mars Rover photos",
	})
	reg.RegisterCommand("/roverinfo", commands.Command{
		Handler:     h.RoverInfo,
		Description: "Mars Rover information",
	})
	reg.RegisterCommand("/image", commands.Command{
		Handler:     h.Image,
		Description: "Search the NASA Image Library",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     h.Stats,
		Description: "Request totals per command",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(cbSetCustomDate, h.SetCustomDate)
	_ = reg.RegisterCallback(cbSetDefaultDate, h.SetDefaultDate)
	_ = reg.RegisterCallback(cbCancelDate, h.CancelDate)
	_ = reg.RegisterCallback(cbRoverCuriosity, h.ChooseCuriosity)
	_ = reg.RegisterCallback(cbRoverPerseverance, h.ChoosePerseverance)
	_ = reg.RegisterCallback(cbCancelRover, h.CancelRover)

	reg.SetTextFallback(h.FreeText)
	reg.SetCallbackNotFound(h.UnknownCallback())

	return reg
}

// Registry exposes the command/callback registry.
func (a *App) Registry() *tg.Registry { return a.registry }

// TelegramRunOptions builds the runtime options for the bot loop.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	cfg := a.cfg.CoreConfig()

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{
		NotFound: a.handlers.UnknownCallback(),
	}))
	routes = append(routes, router.TextRoutes(a.registry, router.TextOptions{
		UnknownText:     a.handlers.UnknownText(),
		UnknownDocument: a.handlers.UnknownDocument(),
	})...)

	return tg.RunOptions{
		Config:      cfg,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}, nil
}
