package main

import (
	"flag"
	"log"
	"os"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"gopkg.in/yaml.v2"

	"github.com/darianrosebrook/animate-sub001/api"
	"github.com/darianrosebrook/animate-sub001/document"
	"github.com/darianrosebrook/animate-sub001/stream"
	"github.com/darianrosebrook/animate-sub001/timeline"
)

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Streamer *stream.Streamer
	Api      *api.Api
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
}

func (a *app) run() {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	a.Streamer.Run()
}

func (a *app) readConfig(configPath string) {
	f, err := os.Open(configPath)
	if err != nil {
		panic(err)
	}

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&a.Config)
	if err != nil {
		panic(err)
	}
}

func (a *app) loadTimeline() *timeline.Controller {
	if a.Config.Document != "" {
		doc, err := document.Load(a.Config.Document)
		if err != nil {
			panic(err)
		}
		tl, err := doc.Build()
		if err != nil {
			panic(err)
		}
		log.Printf("Loaded document %s: %d tracks", a.Config.Document, len(tl.Tracks()))
		return timeline.NewController(tl, 0)
	}

	// No document configured, start with an empty scratch timeline.
	tl := timeline.New("scratch", 10, a.Config.FrameRate)
	return timeline.NewController(tl, 0)
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: %+v", a.Config)

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID("animate").
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetOnConnectHandler(a.handleOnConnect)
	client := mqtt.NewClient(options)

	ctrl := a.loadTimeline()

	a.Client = client
	a.Streamer = stream.NewStreamer(a.Config, client, ctrl)
	a.Api = api.NewApi(ctrl)

	addr := a.Config.ApiAddr
	if addr == "" {
		addr = ":3000"
	}
	go a.Api.Serve(addr)

	a.run()
}
