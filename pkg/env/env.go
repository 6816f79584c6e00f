// Package env assembles a hub and its bridge from flags and environment.
package env

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/robotalks/squidhub/pkg/bridge/mqtt"
	"github.com/robotalks/squidhub/pkg/framework"
	"github.com/robotalks/squidhub/pkg/hub"
	"github.com/robotalks/squidhub/pkg/hub/transport"
	"github.com/robotalks/squidhub/pkg/hub/transport/serial"
)

// Config provides common options to setup the hub.
type Config struct {
	// Port is a serial device path or a ws:// URL.
	Port   string
	Serial serial.Options
	Settle time.Duration

	// ID identifies the hub on MQTT, defaults to the machine ID.
	ID string
	// MQTTBrokerURL specifies the MQTT broker to use, empty disables the bridge.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
}

var defaultConfig = Config{
	Port:          hub.UndefinedPort,
	Serial:        serial.Options{BaudRate: serial.DefaultBaudRate, ReadTimeout: serial.DefaultReadTimeout},
	Settle:        hub.DefaultSettle,
	MQTTBrokerURL: "mqtt://localhost:1883/",
}

func init() {
	applyEnv(&defaultConfig, os.Getenv)
}

func applyEnv(c *Config, getenv func(string) string) {
	if val := getenv("SQUID_PORT"); val != "" {
		c.Port = val
	}
	if val := getenv("SQUID_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			c.Serial.BaudRate = baud
		}
	}
	if val := getenv("SQUID_ID"); val != "" {
		c.ID = val
	}
	if val, ok := lookup(getenv, "SQUID_MQTT_URL"); ok {
		c.MQTTBrokerURL = val
	}
}

// lookup treats "-" as an explicitly empty value.
func lookup(getenv func(string) string, key string) (string, bool) {
	switch val := getenv(key); val {
	case "":
		return "", false
	case "-":
		return "", true
	default:
		return val, true
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial device or ws:// URL of the hub")
	flag.IntVar(&defaultConfig.Serial.BaudRate, "baud", defaultConfig.Serial.BaudRate, "Serial baud rate")
	flag.DurationVar(&defaultConfig.Settle, "settle", defaultConfig.Settle, "Delay after opening the port")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Hub ID, defaults to machine ID")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Env holds the hub and the optional bridge.
type Env struct {
	Config *Config
	Hub    *hub.Hub
	Bridge *mqtt.Bridge
}

// NewHub creates a Hub using current config.
func (c *Config) NewHub() (*hub.Hub, error) {
	opts, err := c.Serial.Normalize()
	if err != nil {
		return nil, fmt.Errorf("serial options: %w", err)
	}
	h := hub.New(transport.NewOpener(opts))
	h.Settle = c.Settle
	if err = h.SetPort(c.Port); err != nil {
		return nil, err
	}
	return h, nil
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	h, err := c.NewHub()
	if err != nil {
		return nil, err
	}
	env := &Env{Config: c, Hub: h}
	if c.MQTTBrokerURL != "" {
		id := c.ID
		if id == "" {
			id = MachineID()
		}
		meta := mqtt.Meta{Device: h.Name(), Port: h.Port(), Peripherals: h.Peripherals()}
		if env.Bridge, err = mqtt.NewBridge(c.MQTTBrokerURL, id, h, meta); err != nil {
			return nil, fmt.Errorf("create MQTT bridge error: %w", err)
		}
		h.Handler = env.Bridge
	}
	return env, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return env
}

// Runnables lists what runs for the lifetime of the process.
func (e *Env) Runnables() []framework.Runnable {
	runners := []framework.Runnable{e.Hub}
	if e.Bridge != nil {
		runners = append(runners, e.Bridge)
	}
	return runners
}
