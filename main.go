package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledprog/api"
	"github.com/matt-g-everett/ledprog/stream"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Library    *stream.Library
	Controller *stream.Controller
	Streamer   *stream.Streamer
	Api        *api.Api
	clock      stream.Clock
}

func newApp(config stream.Config) *app {
	a := new(app)
	a.Config = config
	a.clock = stream.NewClock(time.Now())

	library, err := stream.BuildLibrary(config.Programs)
	if err != nil {
		panic(err)
	}
	a.Library = library
	log.Printf("Loaded programs: %v", library.Names())

	a.Controller = stream.NewController(config.Strip, library, a.clock())
	if len(config.Playlist) > 0 {
		playlist, err := stream.BuildPlaylist(config.Playlist, library)
		if err != nil {
			panic(err)
		}
		if err := a.Controller.SetPlaylist(playlist, a.clock()); err != nil {
			panic(err)
		}
		log.Printf("Playlist of %d cycles", playlist.Len())
	}
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Streamer.Subscribe(); err != nil {
		log.Println(err)
	}
}

func (a *app) run(ctx context.Context) {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer a.Client.Disconnect(250)

	go func() {
		if err := a.Api.Serve(a.Config.HTTP.Addr); err != nil {
			log.Println(err)
		}
	}()
	go a.Controller.Run(ctx, a.clock)

	a.Streamer.Run(ctx)
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	staticDir := flag.String("static", "client/dist", "Directory of static web client files.")
	flag.Parse()

	// Read the config
	config, err := stream.LoadConfig(*configPath)
	if err != nil {
		panic(err)
	}
	log.Printf("Config: %+v", config.Strip)

	a := newApp(config)

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID("ledprog").
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
	a.Streamer = stream.NewStreamer(a.Config, a.Client, a.Controller, a.clock)
	a.Api = api.NewApi(a.Library, a.Controller, a.clock, *staticDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.run(ctx)
	log.Println("Stopped")
}
