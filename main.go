package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/config"
	"github.com/sakyarasadi/tourguideBackend/pkg/clients/firebase"
	"github.com/sakyarasadi/tourguideBackend/pkg/clients/redis"
	"github.com/sakyarasadi/tourguideBackend/pkg/knowledge"
	"github.com/sakyarasadi/tourguideBackend/pkg/projectlog"
	"github.com/sakyarasadi/tourguideBackend/pkg/tools"
	"github.com/sakyarasadi/tourguideBackend/repository/clientimplement"
	"github.com/sakyarasadi/tourguideBackend/router"
	"github.com/sakyarasadi/tourguideBackend/service/bot"
)

func main() {
	defer func() {
		if serviceErr := recover(); serviceErr != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)
			log.Println("The service exits abnormally, error message:【", serviceErr, "】")
			log.Println("Stack info: ")
			fmt.Printf("==> %s\n", string(buf[:n]))
			os.Exit(1)
		}
	}()

	// .env is a local convenience, deployments use real env variables
	_ = godotenv.Load()

	projectlog.Init()

	cfg := config.GetInstance()
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("configuration error: %v", err)
	}

	warmUp()

	go startServer()
	waitStop()
}

// warmUp touches every external dependency once so connection problems
// show up at boot rather than on the first request. A failed store is a
// degraded start, not a fatal one.
func warmUp() {
	if !redis.GetInstance().IsConnected() {
		logrus.Warn("redis is not reachable, session memory is disabled")
	}
	if !firebase.GetInstance().IsConnected() {
		logrus.Warn("firestore is not reachable, persistence is disabled")
	}

	store := knowledge.GetInstance()
	if store == nil {
		logrus.Warn("knowledge base unavailable, answering without retrieval")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	dir := config.GetInstance().GetString(config.KnowledgeDir)
	if err := store.BuildFromDir(ctx, dir); err != nil {
		logrus.Warnf("knowledge base build from %s failed: %v", dir, err)
		return
	}
	logrus.Infof("knowledge base ready with %d chunks", store.Count())
}

func startServer() {
	cfg := config.GetInstance()
	addr := fmt.Sprintf(":%d", cfg.GetIntOrDefault(config.Port, 8080))

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   cfg.CorsOriginList(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "User-Role", "X-Request-ID"},
		AllowCredentials: true,
	})

	logrus.Infof("listening on %s", addr)
	if err := http.ListenAndServe(addr, corsWrapper.Handler(router.GetInstance())); err != nil {
		logrus.Errorf("Failed to ListenAndServe at %v, err = %v", addr, err)
		os.Exit(1)
	}
}

func waitStop() {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	sig := <-sc
	log.Printf("exit: signal=<%d>.\n", sig)

	shutdown()

	switch sig {
	case syscall.SIGTERM:
		log.Println("exit: bye :-).")
		os.Exit(0)
	default:
		log.Println("exit: bye :-(.")
		os.Exit(1)
	}
}

// shutdown drains the message log batcher and closes client connections.
func shutdown() {
	bot.NewService(clientimplement.GetRepositoryFactoryInstance()).Close()
	tools.ErrorWithPrintContext(redis.GetInstance().Close, "close redis")
	tools.ErrorWithPrintContext(firebase.GetInstance().Close, "close firebase")
}
