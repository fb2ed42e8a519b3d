// Command appmgrd runs the application-manager core: two dispatcher
// queues, the mobile WebSocket transport, the HMI bus TCP transport, and
// the admin diagnostics HTTP surface, wired together and torn down on
// SIGINT/SIGTERM.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/adminapi"
	"github.com/latticeworks/appmgr/internal/config"
	appcore "github.com/latticeworks/appmgr/internal/core"
	"github.com/latticeworks/appmgr/internal/dispatch"
	"github.com/latticeworks/appmgr/internal/domain/syncp"
	"github.com/latticeworks/appmgr/internal/logging"
	"github.com/latticeworks/appmgr/internal/metrics"
	devicetransport "github.com/latticeworks/appmgr/internal/transport/devices"
	hmitransport "github.com/latticeworks/appmgr/internal/transport/hmi"
	mobiletransport "github.com/latticeworks/appmgr/internal/transport/mobile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	logCfg := logging.Config{Level: cfg.Logging.Level, Development: cfg.Logging.Development}
	log, err := logging.New(logCfg)
	if err != nil {
		log = logging.NewDefault()
	}
	defer log.Sync()

	m := metrics.New()

	devices, err := devicetransport.Load(cfg.Admin.DevicesYAML, log.Logger)
	if err != nil {
		log.Warn("failed to load device seed file, starting with an empty list", zap.Error(err))
		devices, _ = devicetransport.Load("", log.Logger)
	}

	sp := syncp.New(cfg.SyncP.Workers, cfg.SyncP.QueueCapacity, log.Logger)
	defer sp.Stop()

	d := dispatch.New(cfg.Dispatch.MobileQueueCapacity, cfg.Dispatch.HMIQueueCapacity, m, log.Logger)

	mobileTransport := mobiletransport.NewWithRateLimit(d, log.Logger, cfg.RateLimit)
	hmiTransport := hmitransport.New(cfg.HMI.Addr, time.Duration(cfg.HMI.DialTimeoutSec)*time.Second, d, log.Logger)

	c := appcore.New(appcore.Deps{
		MobileOut:         mobileTransport,
		HMIOut:            hmiTransport,
		Devices:           devices,
		SyncP:             sp,
		StorageRoot:       cfg.Storage.RootDir,
		StorageQuotaBytes: cfg.Storage.QuotaBytes,
		Log:               log.Logger,
		Metrics:           m,
	})

	d.SetMobileHandler(c.HandleMobile)
	d.SetHMIHandler(c.HandleHMI)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d.Start(ctx)
	go hmiTransport.Run(ctx)

	gin.SetMode(gin.ReleaseMode)
	mobileRouter := gin.New()
	mobileRouter.Use(gin.Recovery())
	mobileRouter.GET("/ws", mobileTransport.HandleConnection)
	mobileServer := &http.Server{Addr: cfg.Mobile.ListenAddr, Handler: mobileRouter}

	admin := adminapi.New(c, m, log.Logger)
	adminServer := &http.Server{Addr: cfg.Admin.ListenAddr, Handler: admin.Handler()}

	go func() {
		log.Info("mobile transport listening", zap.String("addr", cfg.Mobile.ListenAddr))
		if err := mobileServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("mobile transport stopped", zap.Error(err))
		}
	}()
	go func() {
		log.Info("admin surface listening", zap.String("addr", cfg.Admin.ListenAddr))
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("admin surface stopped", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = mobileServer.Shutdown(shutdownCtx)
	_ = adminServer.Shutdown(shutdownCtx)

	cancel()
	d.Stop()
}
