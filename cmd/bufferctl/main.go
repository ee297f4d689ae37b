// Command bufferctl loads a sub-buffer configuration and runs a synthetic
// acoustic-link send loop against it, the way chroniclesd drives its own
// adapters from a single YAML file.
package main

import (
	"flag"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jturner314-nrl/goby3/acomms/buffer"
	"github.com/jturner314-nrl/goby3/internal/config"
)

func main() {
	cfgPath := flag.String("config", "bufferctl.yaml", "path to config file")
	ticks := flag.Int("ticks", 20, "number of send-loop ticks to run")
	period := flag.Duration("period", 100*time.Millisecond, "send-loop tick period")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	db := buffer.NewDynamic[string](nil)
	for name, sub := range cfg.SubBuffers {
		if err := db.Create(name, sub.Build()); err != nil {
			log.WithError(err).WithField("sub_buffer", name).Fatal("create sub-buffer")
		}
	}

	log.WithFields(logrus.Fields{
		"node_id":     cfg.Node,
		"sub_buffers": db.Names(),
	}).Info("bufferctl starting")

	for i := 0; i < *ticks; i++ {
		for _, name := range db.Names() {
			payload := uuid.NewString()
			evicted, err := db.Push(name, payload)
			if err != nil {
				log.WithError(err).WithField("sub_buffer", name).Error("push")
				continue
			}
			for _, e := range evicted {
				log.WithFields(logrus.Fields{
					"sub_buffer": e.Name,
					"value":      e.Value,
				}).Warn("evicted on push")
			}
		}

		for _, e := range db.Expire() {
			log.WithFields(logrus.Fields{
				"sub_buffer": e.Name,
				"value":      e.Value,
			}).Warn("expired")
		}

		top, err := db.Top()
		if err != nil {
			log.WithError(err).Debug("nothing available to send")
		} else {
			if _, err := db.Erase(top); err != nil {
				log.WithError(err).Error("erase after send")
			}
			log.WithFields(logrus.Fields{
				"sub_buffer": top.Name,
				"value":      top.Value,
			}).Info("sent")
		}

		time.Sleep(*period)
	}
}
