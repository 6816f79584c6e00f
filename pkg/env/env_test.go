package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/squidhub/pkg/hub/transport/serial"
)

func TestApplyEnv(t *testing.T) {
	vars := map[string]string{
		"SQUID_PORT":     "/dev/ttyACM1",
		"SQUID_BAUD":     "115200",
		"SQUID_ID":       "scope-a",
		"SQUID_MQTT_URL": "-",
	}
	conf := Config{MQTTBrokerURL: "mqtt://localhost:1883/"}
	applyEnv(&conf, func(key string) string { return vars[key] })
	require.Equal(t, "/dev/ttyACM1", conf.Port)
	require.Equal(t, 115200, conf.Serial.BaudRate)
	require.Equal(t, "scope-a", conf.ID)
	require.Empty(t, conf.MQTTBrokerURL)

	conf = Config{Serial: serial.Options{BaudRate: 9600}, MQTTBrokerURL: "mqtt://a/"}
	applyEnv(&conf, func(key string) string {
		if key == "SQUID_BAUD" {
			return "fast"
		}
		return ""
	})
	require.Equal(t, 9600, conf.Serial.BaudRate)
	require.Equal(t, "mqtt://a/", conf.MQTTBrokerURL)
}

func TestNewEnvWithoutBridge(t *testing.T) {
	conf := NewConfig()
	conf.Port = "/dev/ttyACM0"
	conf.Settle = 10 * time.Millisecond
	conf.MQTTBrokerURL = ""
	env, err := conf.NewEnv()
	require.NoError(t, err)
	require.Nil(t, env.Bridge)
	require.Equal(t, "/dev/ttyACM0", env.Hub.Port())
	require.Equal(t, 10*time.Millisecond, env.Hub.Settle)
	require.Len(t, env.Runnables(), 1)
}

func TestNewEnvWithBridge(t *testing.T) {
	conf := NewConfig()
	conf.Port = "ws://localhost:8080/hub"
	conf.ID = "scope-b"
	conf.MQTTBrokerURL = "mqtt://localhost:1883/lab"
	env, err := conf.NewEnv()
	require.NoError(t, err)
	require.NotNil(t, env.Bridge)
	require.Equal(t, "scope-b", env.Bridge.ID)
	require.Equal(t, "lab/", env.Bridge.Queue.TopicPrefix)
	require.Equal(t, env.Bridge, env.Hub.Handler)
	require.Len(t, env.Runnables(), 2)
}

func TestNewEnvInvalidSerial(t *testing.T) {
	conf := NewConfig()
	conf.Serial.DataBits = 9
	_, err := conf.NewEnv()
	require.Error(t, err)

	conf = NewConfig()
	conf.MQTTBrokerURL = ""
	env, err := conf.NewEnv()
	require.NoError(t, err)
	require.Equal(t, Default().Port, env.Hub.Port())
}
