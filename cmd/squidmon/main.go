package main

import (
	"context"
	"flag"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/robotalks/squidhub/pkg/bridge/mqtt"
	"github.com/robotalks/squidhub/pkg/framework"
	"github.com/robotalks/squidhub/pkg/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/"
)

func init() {
	if val := os.Getenv("SQUID_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}

	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		if strings.HasSuffix(topic, "/"+mqtt.TopicMeta) {
			log.Printf("%s: %s", topic, string(payload))
			return
		}
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
			return
		}
		log.Printf("%s: #%d [%s] %s", topic, typed.Sequence,
			reflect.Indirect(reflect.ValueOf(msg)).Type().Name(), msg.String())
	}))

	err = framework.NewRunner().
		HandleSignals().
		Go(framework.NamedRun("mqtt", framework.RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return q.Close()
		}))).
		Wait()
	if err != nil {
		log.Fatalln(err)
	}
}
