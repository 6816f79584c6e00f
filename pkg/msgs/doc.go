// Package msgs provides the remote control protocol of the hub and all
// message schemas.
package msgs

// Messages are exchanged between squidhubd and remote clients over MQTT.
// Every payload is a Typed envelope carrying a type ID, a sequence number
// pairing replies with commands and the encoded message.
//
// Producer: squidhubd
// Consumer: remote clients (squidmon, acquisition software)
