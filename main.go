package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dilshat/wa-sender/config"
	"github.com/dilshat/wa-sender/controller"
	"github.com/dilshat/wa-sender/dao"
	"github.com/dilshat/wa-sender/dispatch"
	_ "github.com/dilshat/wa-sender/docs"
	"github.com/dilshat/wa-sender/events"
	"github.com/dilshat/wa-sender/log"
	"github.com/dilshat/wa-sender/service"
	"github.com/dilshat/wa-sender/service/dto"
	"github.com/dilshat/wa-sender/sheets"
	"github.com/dilshat/wa-sender/util"
	"github.com/dilshat/wa-sender/whatsapp"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// @title WhatsApp sender HTTP API
// @description Sends WhatsApp messages to the selected rows of a Google Sheet

// @contact.name Dilshat Aliev
// @contact.email dilshat.aliev@gmail.com

func init() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	send := flag.String("send", "", "send once and exit: text, photo or video")
	tpl := flag.String("template", "", "message template, e.g. \"{{Name}} {{Text}}\"")
	flag.Parse()

	if err := log.Init(util.GetEnv("LOG_LEVEL", "info"), false); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//load user settings
	settingsPath := util.GetEnv("SETTINGS_PATH", "")
	if settingsPath == "" {
		var err error
		settingsPath, err = config.SettingsPath()
		if err != nil {
			log.Fatal(err)
		}
	}
	settings, err := config.NewStore(settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	zap.L().Info("Settings loaded", zap.String("path", settings.Path()))

	//create db client
	dbClient, err := dao.GetClient(util.GetEnv("DB_PATH", "wa.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer dbClient.Close()

	//create whatsapp client per run, settings may change between runs
	baseUrl := util.GetEnv("ULTRAMSG_API_URL", whatsapp.DefaultBaseUrl)
	tps := util.GetEnvAsInt("SEND_TPS", 0)
	dispatcher := dispatch.NewDispatcher(func(cfg config.Config) whatsapp.Client {
		return whatsapp.NewClient(cfg.UltramsgInstanceId, cfg.UltramsgToken,
			whatsapp.WithBaseUrl(baseUrl),
			whatsapp.WithTps(tps))
	})

	hub := events.NewHub(64)
	defer hub.Shutdown()

	waService := service.NewService(
		ctx,
		sheets.NewGoogleSource(),
		dispatcher,
		settings,
		dao.NewRunDao(dbClient),
		dao.NewDeliveryDao(dbClient),
		hub,
		util.GetEnvAsInt("STATUS_STORE_DAYS", 7),
		util.GetEnv("WEB_HOOK", ""),
	)

	if *send != "" {
		return sendOnce(ctx, waService, *send, *tpl)
	}

	go func() {
		if err := settings.Watch(ctx); err != nil {
			zap.L().Warn("Settings watcher stopped", zap.Error(err))
		}
	}()

	//attach http handlers
	e := echo.New()
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.HideBanner = true
	e.Use(middleware.BodyLimit("8K"))
	e.Use(middleware.Recover())

	bindRoutes(e, waService)

	go func() {
		<-ctx.Done()
		log.ErrIfErr("Error shutting down http server", e.Shutdown(context.Background()))
	}()

	//start http server
	err = e.Start(":" + util.GetEnv("HTTP_PORT", "8080"))
	if ctx.Err() == nil {
		zap.L().Error("Http server stopped", zap.Error(err))
		return 1
	}
	return 0
}

func sendOnce(ctx context.Context, srv service.Service, mode, tpl string) int {
	status, err := srv.Send(ctx, dto.Dispatch{Mode: mode, Template: tpl})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("Messages Sent: %d\nMessages Not Sent: %d\n", status.Sent, status.NotSent)
	return 0
}

func bindRoutes(e *echo.Echo, service service.Service) {

	e.POST("/runs", controller.GetStartRunFunc(service))

	e.GET("/runs/:id", controller.GetCheckRunFunc(service))

	e.GET("/runs/:id/deliveries/:phone", controller.GetCheckDeliveryFunc(service))

	e.GET("/runs/:id/events", controller.GetRunEventsFunc(service))

	e.GET("/settings", controller.GetSettingsFunc(service))

	e.PUT("/settings", controller.GetSaveSettingsFunc(service))
}
