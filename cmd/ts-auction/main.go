package main

import (
	"flag"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"topsort.com/gotopsort/pkg/helpers"
	topsort "topsort.com/gotopsort/pkg/topsort/client"
	"topsort.com/gotopsort/pkg/topsort/config"
)

const (
	ModeDefault = "locations"
	ModeUsage   = "permitted options: auction (run a demonstration auction) and locations (list ad locations)"
	HostUsage   = "override the API host from config, e.g. http://localhost:8080 for development"
	ConfigUsage = "path to the yaml config, defaults to <repo>/config/topsort.yaml"
)

var (
	modeFlag   string
	hostFlag   string
	configFlag string
	// BuildTime will be populated by the linker to tell builds apart after they were shipped
	BuildTime string
)

func init() {
	flag.StringVar(&modeFlag, "mode", ModeDefault, ModeUsage)
	flag.StringVar(&hostFlag, "host", "", HostUsage)
	flag.StringVar(&configFlag, "config", "", ConfigUsage)
}

func main() {
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		DisableColors: false,
		FullTimestamp: true,
	})

	log.WithFields(
		log.Fields{
			"Image Built on": BuildTime,
			"Started at":     time.Now().UTC(),
		},
	).Println("Application Started")

	configPath := configFlag
	if configPath == "" {
		configPath = helpers.FindFolderDir("gotopsort") + "/config/topsort.yaml"
	}

	cfg, err := config.New(configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if len(hostFlag) > 0 {
		if helpers.IsOnline(hostFlag) {
			log.WithField(hostFlag, "GET successful").Println("Custom Host flag set")
			cfg.SetHost(hostFlag)
		} else {
			log.WithField(hostFlag, "Couldn't GET").Println("Custom Host flag rejected")
		}
	}

	marketplace, apiKey, baseURL, err := cfg.GetTopsort()
	if err != nil {
		log.Fatalf("%v", err)
	}

	client, err := topsort.New(marketplace, apiKey, baseURL)
	if err != nil {
		log.Fatalf("%v", err)
	}

	switch mode := modeFlag; mode {
	case "locations":
		result, err := client.GetAdLocations()
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println(string(result))
	case "auction":
		result, err := client.CreateAuction(
			topsort.AuctionRequest{
				Slots:    topsort.Slots{Listings: 2},
				Products: []topsort.Product{{ProductID: "demo-product"}},
				Session:  topsort.NewSession(),
			},
		)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println(string(result))
	default:
		log.WithField("Message", ModeUsage).Fatalln("No valid mode specified")
	}
}
