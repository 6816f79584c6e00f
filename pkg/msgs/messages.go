package msgs

import (
	"github.com/golang/protobuf/proto"
)

// TypeID Groups
const (
	GroupCommand uint32 = 0x00000000
	GroupHub     uint32 = 0x00100000
)

// TypeIDs
const (
	CommandOKTypeID   uint32 = GroupCommand | TypeIDMaskReply | 0x0000
	CommandErrTypeID  uint32 = GroupCommand | TypeIDMaskReply | 0x0001
	SendCommandTypeID uint32 = GroupHub | 0x0001
	StatusQueryTypeID uint32 = GroupHub | 0x0002
	StatusTypeID      uint32 = StatusQueryTypeID | TypeIDMaskReply
	ResponseTypeID    uint32 = TypeIDKindEvent | GroupHub | 0x0001
)

// MessageTypes maps type IDs to message factories.
var MessageTypes = map[uint32]func() Message{
	CommandOKTypeID:   func() Message { return &CommandOK{} },
	CommandErrTypeID:  func() Message { return &CommandErr{} },
	SendCommandTypeID: func() Message { return &SendCommand{} },
	StatusQueryTypeID: func() Message { return &StatusQuery{} },
	StatusTypeID:      func() Message { return &Status{} },
	ResponseTypeID:    func() Message { return &Response{} },
}

// CommandOK is the generic reply indicating success for commands.
type CommandOK struct {
	// Frame is the encoded frame written to the hub, if any.
	Frame []byte `protobuf:"bytes,1,opt,name=frame,proto3" json:"frame,omitempty"`
}

// TypeID implements Message.
func (m *CommandOK) TypeID() uint32 { return CommandOKTypeID }

// ProtoMessage implements proto.Message.
func (m *CommandOK) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CommandOK) Reset() { *m = CommandOK{} }

// String implements proto.Message.
func (m *CommandOK) String() string { return proto.CompactTextString(m) }

// CommandErr is the generic message representing command error.
type CommandErr struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
}

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error) *CommandErr {
	return &CommandErr{Message: err.Error()}
}

// TypeID implements Message.
func (m *CommandErr) TypeID() uint32 { return CommandErrTypeID }

// ProtoMessage implements proto.Message.
func (m *CommandErr) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CommandErr) Reset() { *m = CommandErr{} }

// String implements proto.Message.
func (m *CommandErr) String() string { return proto.CompactTextString(m) }

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }

// SendCommand asks the hub to send a command frame.
// Tag and Opcode must fit in a byte.
type SendCommand struct {
	Tag     uint32 `protobuf:"varint,1,opt,name=tag,proto3" json:"tag,omitempty"`
	Opcode  uint32 `protobuf:"varint,2,opt,name=opcode,proto3" json:"opcode,omitempty"`
	Payload []byte `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
}

// TypeID implements Message.
func (m *SendCommand) TypeID() uint32 { return SendCommandTypeID }

// ProtoMessage implements proto.Message.
func (m *SendCommand) ProtoMessage() {}

// Reset implements proto.Message.
func (m *SendCommand) Reset() { *m = SendCommand{} }

// String implements proto.Message.
func (m *SendCommand) String() string { return proto.CompactTextString(m) }

// StatusQuery queries the hub status.
type StatusQuery struct {
}

// TypeID implements Message.
func (m *StatusQuery) TypeID() uint32 { return StatusQueryTypeID }

// ProtoMessage implements proto.Message.
func (m *StatusQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *StatusQuery) Reset() { *m = StatusQuery{} }

// String implements proto.Message.
func (m *StatusQuery) String() string { return proto.CompactTextString(m) }

// Status is the reply of StatusQuery.
type Status struct {
	Port              string `protobuf:"bytes,1,opt,name=port,proto3" json:"port,omitempty"`
	Initialized       bool   `protobuf:"varint,2,opt,name=initialized,proto3" json:"initialized,omitempty"`
	FramesSent        uint64 `protobuf:"varint,3,opt,name=frames_sent,json=framesSent,proto3" json:"frames_sent,omitempty"`
	ResponsesReceived uint64 `protobuf:"varint,4,opt,name=responses_received,json=responsesReceived,proto3" json:"responses_received,omitempty"`
}

// TypeID implements Message.
func (m *Status) TypeID() uint32 { return StatusTypeID }

// ProtoMessage implements proto.Message.
func (m *Status) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Status) Reset() { *m = Status{} }

// String implements proto.Message.
func (m *Status) String() string { return proto.CompactTextString(m) }

// Response is an event carrying bytes received from the hub.
type Response struct {
	Data []byte `protobuf:"bytes,1,opt,name=data,proto3" json:"data,omitempty"`
	// Timestamp is in unix nanoseconds.
	Timestamp int64 `protobuf:"varint,2,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
}

// TypeID implements Message.
func (m *Response) TypeID() uint32 { return ResponseTypeID }

// ProtoMessage implements proto.Message.
func (m *Response) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Response) Reset() { *m = Response{} }

// String implements proto.Message.
func (m *Response) String() string { return proto.CompactTextString(m) }
