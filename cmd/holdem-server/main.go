package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"nlhe-lite/server"
	"nlhe-lite/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	store, storageMode, err := storage.NewStoreFromEnv(log)
	if err != nil {
		log.WithError(err).Fatal("failed to init storage")
	}
	defer store.Close()

	gate, err := server.NewSessionGateFromEnv()
	if err != nil {
		log.WithError(err).Fatal("failed to init session gate")
	}

	gw := server.New(store, gate, log)

	addr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if addr == "" {
		addr = ":8080"
	}
	log.WithFields(logrus.Fields{
		"storage_mode": storageMode,
		"auth_enabled": gate.Enabled(),
		"addr":         addr,
	}).Info("starting websocket server")
	if err := http.ListenAndServe(addr, gw.Handler()); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
