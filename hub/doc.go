// Package hub streams render frames to WebSocket subscribers and turns the
// messages they send back into calls on the simulator.
//
// Every client message is a JSON Intent with a "type" field. Intents that
// return something (a pick, a pause state) or fail are answered with a Reply
// to that client only; frames go to everyone.
package hub
