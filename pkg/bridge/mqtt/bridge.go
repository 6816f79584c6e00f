package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/squidhub/pkg/hub"
	"github.com/robotalks/squidhub/pkg/hub/comm"
	"github.com/robotalks/squidhub/pkg/msgs"
)

// Topic layout under the queue prefix:
//
//	squid/<id>/cmd   commands in
//	squid/<id>/msg   replies and events out
//	squid/<id>/meta  retained Meta JSON, empty when offline
const (
	TopicRoot = "squid"
	TopicCmd  = "cmd"
	TopicMsg  = "msg"
	TopicMeta = "meta"
)

// Commander is the hub surface exposed on MQTT.
type Commander interface {
	SendCommand(tag, opcode byte, payload []byte) (comm.Frame, error)
	Status() hub.Status
}

// Meta describes the hub to remote clients.
type Meta struct {
	Device      string   `json:"device"`
	Port        string   `json:"port,omitempty"`
	Peripherals []string `json:"peripherals,omitempty"`
}

// Bridge relays commands from MQTT to the hub and publishes hub responses.
type Bridge struct {
	Queue *Queue
	ID    string
	Hub   Commander

	metaJSON []byte
}

// TopicBase returns the per-hub topic prefix.
func TopicBase(id string) string {
	return TopicRoot + "/" + id + "/"
}

// NewBridge creates a Bridge connected to brokerURL.
func NewBridge(brokerURL, id string, h Commander, meta Meta) (*Bridge, error) {
	metaJSON, err := json.Marshal(&meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+TopicBase(id)+TopicMeta, nil, 1, true)
	b := &Bridge{
		Queue:    NewQueue(opts, topicPrefix),
		ID:       id,
		Hub:      h,
		metaJSON: metaJSON,
	}
	b.Queue.OnConnect = func(q *Queue) {
		q.PubWith(TopicBase(b.ID)+TopicMeta, b.metaJSON, 1, true)
	}
	return b, nil
}

// Name implements Named.
func (b *Bridge) Name() string {
	return "mqtt:" + b.ID
}

// Run implements Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	token := b.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	base := TopicBase(b.ID)
	sub := b.Queue.Sub(base+TopicCmd, func(_ string, payload []byte) {
		reply, err := b.Process(payload)
		if err != nil {
			glog.Warningf("bad command: %v", err)
			return
		}
		if reply != nil {
			b.Queue.Pub(base+TopicMsg, reply)
		}
	})
	<-ctx.Done()
	sub.Close()
	b.Queue.PubWith(base+TopicMeta, nil, 1, true).WaitTimeout(time.Second)
	b.Queue.Close()
	return ctx.Err()
}

// HandleResponse implements ResponseHandler by publishing a Response event.
func (b *Bridge) HandleResponse(ctx context.Context, p []byte) {
	data, err := msgs.Encode(&msgs.Response{Data: p, Timestamp: time.Now().UnixNano()}, 0)
	if err != nil {
		glog.Errorf("encode response: %v", err)
		return
	}
	b.Queue.Pub(TopicBase(b.ID)+TopicMsg, data)
}

// Process handles an encoded command and returns the encoded reply.
// Anything other than a command request is ignored with a nil reply.
func (b *Bridge) Process(payload []byte) ([]byte, error) {
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		return nil, err
	}
	if !typed.IsCommand() || typed.IsReply() {
		return nil, nil
	}
	var reply msgs.Message
	msg, err := typed.Decode()
	if _, ok := err.(*msgs.ErrUnknownType); ok {
		reply = msgs.NewCommandErr(msgs.ErrUnsupportedCommand)
	} else if err != nil {
		reply = msgs.NewCommandErr(err)
	} else {
		reply = b.execute(msg)
	}
	return msgs.Encode(reply, typed.Sequence)
}

func (b *Bridge) execute(msg msgs.Message) msgs.Message {
	switch m := msg.(type) {
	case *msgs.SendCommand:
		if m.Tag > 0xff || m.Opcode > 0xff {
			return msgs.NewCommandErr(fmt.Errorf("tag %d or opcode %d out of range", m.Tag, m.Opcode))
		}
		f, err := b.Hub.SendCommand(byte(m.Tag), byte(m.Opcode), m.Payload)
		if err != nil {
			return msgs.NewCommandErr(err)
		}
		return &msgs.CommandOK{Frame: f.Bytes()}
	case *msgs.StatusQuery:
		s := b.Hub.Status()
		return &msgs.Status{
			Port:              s.Port,
			Initialized:       s.Initialized,
			FramesSent:        s.FramesSent,
			ResponsesReceived: s.ResponsesReceived,
		}
	default:
		return msgs.NewCommandErr(msgs.ErrUnsupportedCommand)
	}
}
